package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"StockScout/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at    INTEGER NOT NULL,
			duration_ms   INTEGER,
			universe_size INTEGER,
			skipped       INTEGER,
			failed        INTEGER,
			drops         INTEGER,
			rsi_signals   INTEGER,
			crosses       INTEGER,
			delivered     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS drop_signals (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			current_price   REAL,
			reference_price REAL,
			drop_pct        REAL,
			reference_date  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_drop_run ON drop_signals(run_id)`,

		`CREATE TABLE IF NOT EXISTS rsi_signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			rsi           REAL,
			current_price REAL,
			trend         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rsi_run ON rsi_signals(run_id)`,

		`CREATE TABLE IF NOT EXISTS cross_signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			ma50          REAL,
			ma200         REAL,
			current_price REAL,
			trend         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cross_run ON cross_signals(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord, report *model.ScanReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	if rec.Delivered {
		delivered = 1
	}
	res, err := r.db.Exec(`INSERT INTO scan_runs
		(started_at, duration_ms, universe_size, skipped, failed, drops, rsi_signals, crosses, delivered)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.StartedAt.Unix(), rec.Duration.Milliseconds(), rec.Universe,
		rec.Skipped, rec.Failed,
		len(report.Drops), len(report.Rsi), len(report.Crosses), delivered,
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, d := range report.Drops {
		if _, err := r.db.Exec(`INSERT INTO drop_signals
			(run_id, symbol, current_price, reference_price, drop_pct, reference_date)
			VALUES (?,?,?,?,?,?)`,
			runID, d.Symbol, d.CurrentPrice, d.ReferencePrice, d.DropPercentage,
			d.ReferenceDate.Format("2006-01-02"),
		); err != nil {
			return err
		}
	}
	for _, s := range report.Rsi {
		if _, err := r.db.Exec(`INSERT INTO rsi_signals
			(run_id, symbol, rsi, current_price, trend)
			VALUES (?,?,?,?,?)`,
			runID, s.Symbol, s.RSI, s.CurrentPrice, string(s.Trend),
		); err != nil {
			return err
		}
	}
	for _, c := range report.Crosses {
		if _, err := r.db.Exec(`INSERT INTO cross_signals
			(run_id, symbol, ma50, ma200, current_price, trend)
			VALUES (?,?,?,?,?,?)`,
			runID, c.Symbol, c.MA50, c.MA200, c.CurrentPrice, string(c.Trend),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
