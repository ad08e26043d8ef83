package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	pq "github.com/lib/pq"
)

func newMockMessagesRepo(t *testing.T) (*messagesRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &messagesRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func messageColumns() []string {
	return []string{
		"cusip_id", "msg_seq_nb", "orig_msg_seq_nb", "trc_st",
		"entrd_vol_qt", "rptd_pr", "yld_pt", "rpt_side_cd", "cntra_mp_id",
		"trd_exctn_dt", "trd_exctn_tm", "trd_rpt_dt", "trd_rpt_tm",
		"stlmnt_dt", "days_to_sttl_ct", "asof_cd", "wis_fl", "spcl_trd_fl",
	}
}

func TestFetchMessages_SQLMock(t *testing.T) {
	repo, mock, done := newMockMessagesRepo(t)
	defer done()

	execDate := time.Date(2013, 3, 15, 0, 0, 0, 0, time.UTC)
	settle := time.Date(2013, 3, 18, 0, 0, 0, 0, time.UTC)
	start := time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2013, 3, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(messageColumns()).
		AddRow("594918AB5", int64(10), int64(9), "R",
			"250000", "99.875", "4.125", "B", "C",
			execDate, "14:30:00", execDate, "14:31:05.123456",
			settle, int64(3), "A", "N", "Z").
		AddRow("594918AB5", int64(11), nil, "T",
			"100000.00", "100.5", nil, "S", "D",
			execDate, "15:00:00", execDate, "15:02:00",
			nil, nil, nil, nil, nil)

	mock.ExpectQuery(`FROM trace_messages`).
		WithArgs(pq.Array([]string{"594918AB5"}), start, end).
		WillReturnRows(rows)

	msgs, err := repo.FetchMessages(context.Background(), []string{"594918AB5"}, start, end)
	if err != nil {
		t.Fatalf("FetchMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("want 2 messages, got %d", len(msgs))
	}

	first := msgs[0]
	if first.MessageSeq != 10 || !first.OrigMessageSeq.Valid || first.OrigMessageSeq.Int64 != 9 {
		t.Fatalf("sequence mapping wrong: %+v", first)
	}
	if first.Price.String() != "99.875" || first.Volume.String() != "250000" {
		t.Fatalf("decimal mapping wrong: %+v", first)
	}
	if !first.Yield.Valid || first.Yield.Decimal.String() != "4.125" {
		t.Fatalf("yield mapping wrong: %+v", first.Yield)
	}
	if got := first.ExecutionTime.Format("15:04:05"); got != "14:30:00" {
		t.Fatalf("execution time: want 14:30:00 got %q", got)
	}
	if first.SettlementDate.IsZero() || first.AsOfCode != "A" || first.SpecialCondition != "Z" {
		t.Fatalf("flag mapping wrong: %+v", first)
	}

	second := msgs[1]
	if second.OrigMessageSeq.Valid || second.Yield.Valid || second.DaysToSettle.Valid {
		t.Fatalf("nullable fields should be absent: %+v", second)
	}
	if !second.SettlementDate.IsZero() {
		t.Fatalf("settlement date should map NULL to the zero value")
	}
	if second.Volume.String() != "100000" {
		t.Fatalf("volume scale not canonical: %q", second.Volume.String())
	}
	if second.AsOfCode != "" || second.WhenIssued != "" || second.SpecialCondition != "" {
		t.Fatalf("NULL flags should map to empty strings: %+v", second)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetchMessages_BadClockValue(t *testing.T) {
	repo, mock, done := newMockMessagesRepo(t)
	defer done()

	execDate := time.Date(2013, 3, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(messageColumns()).
		AddRow("594918AB5", int64(1), nil, "T",
			"100", "99.5", nil, "S", "D",
			execDate, "not-a-time", execDate, "15:02:00",
			nil, nil, nil, nil, nil)

	mock.ExpectQuery(`FROM trace_messages`).WillReturnRows(rows)

	if _, err := repo.FetchMessages(context.Background(), []string{"594918AB5"}, execDate, execDate); err == nil {
		t.Fatalf("expected error for malformed time value")
	}
}

func TestFetchMessages_QueryError(t *testing.T) {
	repo, mock, done := newMockMessagesRepo(t)
	defer done()

	mock.ExpectQuery(`FROM trace_messages`).WillReturnError(dummyErr{})

	day := time.Date(2013, 3, 15, 0, 0, 0, 0, time.UTC)
	if _, err := repo.FetchMessages(context.Background(), []string{"X"}, day, day); err == nil {
		t.Fatalf("expected query error to propagate")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"14:30:00", "14:30:00", false},
		{"14:30:00.5", "14:30:00", false},
		{"", "00:00:00", false},
		{"99:99:99", "", true},
	}
	for _, c := range cases {
		got, err := parseClock(nullString(c.in))
		if c.wantErr {
			if err == nil {
				t.Fatalf("parseClock(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseClock(%q): %v", c.in, err)
		}
		if got.Format("15:04:05") != c.want {
			t.Fatalf("parseClock(%q)=%v, want %s", c.in, got, c.want)
		}
	}
}

func nullString(s string) (ns sql.NullString) {
	if s != "" {
		ns.Valid = true
		ns.String = s
	}
	return ns
}
