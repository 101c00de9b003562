package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"labeleval/internal/confusion"
	"labeleval/internal/domain"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS evaluation_runs (
		id           TEXT PRIMARY KEY,
		input_path   TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		emotion_b1   INTEGER NOT NULL DEFAULT 0,
		emotion_b2   INTEGER NOT NULL DEFAULT 0,
		emotion_b3   INTEGER NOT NULL DEFAULT 0,
		domain_b1    INTEGER NOT NULL DEFAULT 0,
		domain_b2    INTEGER NOT NULL DEFAULT 0,
		domain_b3    INTEGER NOT NULL DEFAULT 0,
		created_at   DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON evaluation_runs(created_at);

	CREATE TABLE IF NOT EXISTS confusion_pairs (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id    TEXT NOT NULL,
		axis      TEXT NOT NULL,
		manual    TEXT NOT NULL,
		predicted TEXT NOT NULL,
		count     INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pairs_run ON confusion_pairs(run_id, axis);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InsertRun stores a run and its confusion pairs in one transaction.
func InsertRun(db *sql.DB, s domain.RunSummary, emotion, dom *confusion.Table) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err = tx.Exec(
		`INSERT INTO evaluation_runs (id, input_path, record_count, emotion_b1, emotion_b2, emotion_b3, domain_b1, domain_b2, domain_b3, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.InputPath, s.RecordCount,
		s.EmotionBuckets[domain.BucketExact], s.EmotionBuckets[domain.BucketTolerant], s.EmotionBuckets[domain.BucketMismatch],
		s.DomainBuckets[domain.BucketExact], s.DomainBuckets[domain.BucketTolerant], s.DomainBuckets[domain.BucketMismatch],
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO confusion_pairs (run_id, axis, manual, predicted, count) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	tables := []struct {
		axis  domain.Axis
		table *confusion.Table
	}{
		{domain.AxisEmotion, emotion},
		{domain.AxisDomain, dom},
	}
	for _, at := range tables {
		if at.table == nil {
			continue
		}
		for _, p := range at.table.Pairs() {
			if _, err := stmt.Exec(s.RunID, string(at.axis), p.Manual, p.Predicted, p.Count); err != nil {
				return fmt.Errorf("insert %s pair: %w", at.axis, err)
			}
		}
	}
	return tx.Commit()
}

// ListRuns returns the newest runs first. limit <= 0 returns all runs.
func ListRuns(db *sql.DB, limit int) ([]domain.StoredRun, error) {
	query := `SELECT id, input_path, record_count, emotion_b1, emotion_b2, emotion_b3, domain_b1, domain_b2, domain_b3, created_at
		 FROM evaluation_runs ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.StoredRun
	for rows.Next() {
		var r domain.StoredRun
		err := rows.Scan(
			&r.RunID, &r.InputPath, &r.RecordCount,
			&r.EmotionB1, &r.EmotionB2, &r.EmotionB3,
			&r.DomainB1, &r.DomainB2, &r.DomainB3,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetConfusionTable rebuilds the stored table of one run and axis.
func GetConfusionTable(db *sql.DB, runID string, axis domain.Axis) (*confusion.Table, error) {
	rows, err := db.Query(
		`SELECT manual, predicted, count FROM confusion_pairs WHERE run_id = ? AND axis = ?`,
		runID, string(axis),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := confusion.NewTable()
	for rows.Next() {
		var manual, predicted string
		var n int
		if err := rows.Scan(&manual, &predicted, &n); err != nil {
			return nil, err
		}
		t.Add(manual, predicted, n)
	}
	return t, rows.Err()
}
