//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/tracepulse/config"
	"github.com/guttosm/tracepulse/internal/app"
	"github.com/guttosm/tracepulse/internal/runner"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "tracepulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=tracepulse sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "tracepulse")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedForE2E inserts post-cutover raw messages: two trades that should
// survive and one trade struck by a cancellation on its business key.
func seedForE2E(t *testing.T, db *sql.DB, d time.Time) {
	t.Helper()
	insert := func(seq int64, status, vol, price, side, cpty, tm string) {
		_, err := db.Exec(`INSERT INTO trace_messages (
            cusip_id, msg_seq_nb, trc_st, entrd_vol_qt, rptd_pr,
            rpt_side_cd, cntra_mp_id, trd_exctn_dt, trd_exctn_tm, trd_rpt_dt, trd_rpt_tm
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			"594918AB5", seq, status, vol, price, side, cpty, d, tm, d, tm)
		if err != nil {
			t.Fatalf("seed seq=%d: %v", seq, err)
		}
	}

	insert(1, "T", "100000", "99.5", "S", "D", "14:30:00")
	insert(2, "T", "250000", "100.25", "B", "C", "15:00:00")
	insert(3, "T", "50000", "101", "B", "C", "15:30:00")
	// Cancellation matching message 2's business key.
	insert(4, "X", "250000", "100.25", "B", "C", "15:00:00")
}

func TestAPI_E2E_ReconcileAndQuery(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	db := openAndMigrate(t, dsn)
	defer db.Close()

	// Fixed post-cutover execution date.
	day := time.Date(2013, 3, 15, 0, 0, 0, 0, time.UTC)
	seedForE2E(t, db, day)

	// Reconcile the seeded window end to end.
	opts := runner.Options{
		Cusips:    []string{"594918AB5"},
		StartDate: day,
		EndDate:   day.AddDate(0, 0, 1),
		Cutover:   time.Date(2012, 2, 6, 0, 0, 0, 0, time.UTC),
		BatchSize: 100,
		Parallel:  1,
	}
	if err := runner.Run(context.Background(), db, opts); err != nil {
		t.Fatalf("runner: %v", err)
	}

	// Point application config to containerized DB
	config.AppConfig.Postgres.Host = host
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig.Postgres.Port = int(p)
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "tracepulse"
	config.AppConfig.Postgres.SSLMode = "disable"

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	t.Run("list trades", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/trades?cusip=594918AB5&start_date="+day.Format("2006-01-02"), nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
		}
		var body []struct {
			CUSIP         string `json:"cusip"`
			ExecutionTime string `json:"execution_time"`
			Price         string `json:"price"`
			Volume        string `json:"volume"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if len(body) != 2 {
			t.Fatalf("want 2 clean trades (cancelled one removed), got %d: %+v", len(body), body)
		}
		if body[0].ExecutionTime != "14:30:00" || body[0].Price != "99.5" {
			t.Fatalf("unexpected first trade: %+v", body[0])
		}
		if body[1].Price != "101" || body[1].Volume != "50000" {
			t.Fatalf("unexpected second trade: %+v", body[1])
		}
	})

	t.Run("trade summary", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/trades/summary?cusip=594918AB5&start_date="+day.Format("2006-01-02"), nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
		}
		var body struct {
			CUSIP          string `json:"cusip"`
			TradeCount     int64  `json:"trade_count"`
			TotalVolume    string `json:"total_volume"`
			MaxPrice       string `json:"max_price"`
			MaxDailyVolume string `json:"max_daily_volume"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if body.CUSIP != "594918AB5" || body.TradeCount != 2 {
			t.Fatalf("unexpected summary: %+v", body)
		}
		if body.MaxPrice != "101" || body.TotalVolume != "150000" || body.MaxDailyVolume != "150000" {
			t.Fatalf("unexpected summary numbers: %+v", body)
		}
	})
}
