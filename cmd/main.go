package main

//
//  @title           tracepulse API
//  @version         1.0
//  @description     TRACE bond-trade reconciliation service.
//  @termsOfService  https://github.com/guttosm/tracepulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tracepulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        trades
//  @tag.description Endpoints for querying reconciled clean trades
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/tracepulse/config"
	_ "github.com/guttosm/tracepulse/docs" // swagger docs
	"github.com/guttosm/tracepulse/internal/app"
	"github.com/guttosm/tracepulse/internal/logger"
	"github.com/guttosm/tracepulse/internal/runner"
)

const dateLayout = "2006-01-02"

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// readCusips resolves the CUSIP universe from the --cusips flag (comma
// separated) or from a file with one identifier per line. The flag wins
// when both are set. Identifiers are trimmed, upper-cased, and
// de-duplicated preserving first occurrence.
func readCusips(list, file string) ([]string, error) {
	var raw []string
	switch {
	case list != "":
		raw = strings.Split(list, ",")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading cusip file: %w", err)
		}
		raw = strings.Split(string(data), "\n")
	default:
		return nil, errors.New("either --cusips or --cusip-file is required")
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, c := range raw {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, errors.New("cusip list is empty")
	}
	return out, nil
}

// resolveWindow picks the reconciliation window: explicit --start/--end
// bounds when both are given, otherwise the last N business days ending
// with the most recent completed session. N is clamped to 2..30 so the
// defaulted window always spans at least two sessions.
func resolveWindow(start, end string, days int) (time.Time, time.Time, error) {
	if (start == "") != (end == "") {
		return time.Time{}, time.Time{}, errors.New("--start and --end must be provided together")
	}
	if start != "" {
		s, err := time.Parse(dateLayout, start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date: %w", err)
		}
		e, err := time.Parse(dateLayout, end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date: %w", err)
		}
		return s, e, nil
	}

	if days < 2 {
		days = 2
	}
	if days > 30 {
		days = 30
	}
	s, e := runner.DefaultWindow(days, time.Now())
	return s, e, nil
}

// main is the entry point of the tracepulse application.
//
// Modes (selected via --mode flag):
//   - reconcile: Resolves raw TRACE messages into clean trades for a CUSIP
//     universe and date window, persisting the result per batch.
//   - api:       Starts the REST API to expose reconciled clean trades.
//
// Flags:
//   - --mode:       Execution mode ("reconcile" or "api"). Default: "reconcile".
//   - --cusips:     Comma-separated CUSIP list for reconcile mode.
//   - --cusip-file: File with one CUSIP per line (alternative to --cusips).
//   - --start/--end: Explicit execution-date window (YYYY-MM-DD, inclusive).
//   - --days:       Business days to cover when --start/--end are absent.
//   - --batch-size: CUSIPs per batch. Defaults to value from config.
//   - --parallel:   Concurrent batches (0=auto up to CPU, max 8).
//   - --force:      Rebuild batches even if already reconciled.
//   - --port:       Port for API mode. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "reconcile", "Mode: reconcile or api")
	cusipList := flag.String("cusips", "", "Comma-separated CUSIPs to reconcile")
	cusipFile := flag.String("cusip-file", "", "File with one CUSIP per line")
	start := flag.String("start", "", "Window start date (YYYY-MM-DD)")
	end := flag.String("end", "", "Window end date (YYYY-MM-DD)")
	days := flag.Int("days", 5, "Business days to reconcile when no explicit window is given (2-30)")
	batchSize := flag.Int("batch-size", 0, "CUSIPs per batch (0=config default)")
	parallel := flag.Int("parallel", 0, "How many batches to process concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Reconcile batches even if already recorded (deletes existing clean trades for that batch)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "reconcile":
		// Batch mode: resolve raw messages into clean trades
		logger.L().Info().Msg("running reconciliation")

		cusips, err := readCusips(*cusipList, *cusipFile)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("cusip universe error")
		}

		startDate, endDate, err := resolveWindow(*start, *end, *days)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("date window error")
		}

		batch := *batchSize
		if batch <= 0 {
			batch = config.AppConfig.Reconcile.BatchSize
		}
		par := *parallel
		if par <= 0 {
			par = config.AppConfig.Reconcile.MaxParallel
		}

		// Direct DB connection for reconciliation
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		opts := runner.Options{
			Cusips:    cusips,
			StartDate: startDate,
			EndDate:   endDate,
			Cutover:   config.AppConfig.Reconcile.Cutover,
			BatchSize: batch,
			Parallel:  par,
			Force:     *force,
		}
		if err := runner.Run(ctx, db, opts); err != nil {
			logger.L().Fatal().Err(err).Msg("reconciliation failed")
		}
		logger.L().Info().Msg("reconciliation completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
