// Package sqlite provides SQLite-based persistent storage for SugarLog.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/sugarlog-app/sugarlog/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Gamification state, one row per user
		`CREATE TABLE IF NOT EXISTS users (
			id             TEXT PRIMARY KEY,
			xp             INTEGER NOT NULL DEFAULT 0,
			level          INTEGER NOT NULL DEFAULT 1,
			streak         INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_logged_at INTEGER
		)`,

		// Logged intake events with their generated feedback
		`CREATE TABLE IF NOT EXISTS sugar_logs (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			type             TEXT NOT NULL,
			method           TEXT NOT NULL,
			sugar_grams      REAL NOT NULL,
			time_of_day      TEXT NOT NULL,
			ctx_steps        INTEGER,
			ctx_sleep_hours  REAL,
			ctx_heart_rate   INTEGER,
			insight          TEXT NOT NULL,
			suggested_action TEXT NOT NULL,
			action_completed BOOLEAN DEFAULT 0,
			xp_earned        INTEGER NOT NULL,
			logged_at        INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_user ON sugar_logs(user_id, logged_at)`,

		// Granted rewards, one per logged event
		`CREATE TABLE IF NOT EXISTS rewards (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			log_id      TEXT NOT NULL,
			type        TEXT NOT NULL,
			value       INTEGER NOT NULL,
			description TEXT NOT NULL,
			granted_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_user ON rewards(user_id, granted_at)`,

		// Daily health metrics keyed by (user, calendar day)
		`CREATE TABLE IF NOT EXISTS health_metrics (
			user_id        TEXT NOT NULL,
			date           TEXT NOT NULL,
			steps          INTEGER,
			sleep_hours    REAL,
			avg_heart_rate INTEGER,
			PRIMARY KEY (user_id, date)
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── User Gamification State ────────────────────────────────────────────────

// EnsureUser creates the user's state row if it does not exist yet.
func (d *DB) EnsureUser(userID string) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id) VALUES (?) ON CONFLICT(id) DO NOTHING`,
		userID,
	)
	return err
}

// GetUserState loads the user's gamification counters.
// Returns domain.ErrUserNotFound when no row exists.
func (d *DB) GetUserState(userID string) (domain.GamificationState, error) {
	var s domain.GamificationState
	var lastLogged sql.NullInt64

	err := d.db.QueryRow(
		`SELECT xp, level, streak, longest_streak, last_logged_at
		 FROM users WHERE id = ?`, userID,
	).Scan(&s.XP, &s.Level, &s.Streak, &s.LongestStreak, &lastLogged)
	if err == sql.ErrNoRows {
		return s, domain.ErrUserNotFound
	}
	if err != nil {
		return s, err
	}

	if lastLogged.Valid {
		s.LastLoggedAt = time.Unix(lastLogged.Int64, 0).UTC()
	}
	return s, nil
}

// UpdateUserStateCAS writes the new gamification state only if the row
// still carries the previously read xp and streak values. Returns
// domain.ErrStateConflict when a concurrent update won the race — callers
// re-read and recompute.
func (d *DB) UpdateUserStateCAS(userID string, prior, next domain.GamificationState) error {
	res, err := d.db.Exec(
		`UPDATE users
		 SET xp = ?, level = ?, streak = ?, longest_streak = ?, last_logged_at = ?
		 WHERE id = ? AND xp = ? AND streak = ?`,
		next.XP, next.Level, next.Streak, next.LongestStreak, nullableUnix(next.LastLoggedAt),
		userID, prior.XP, prior.Streak,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrStateConflict
	}
	return nil
}

// ─── Sugar Logs ─────────────────────────────────────────────────────────────

// InsertLog stores a new sugar log.
func (d *DB) InsertLog(l domain.SugarLog) error {
	_, err := d.db.Exec(
		`INSERT INTO sugar_logs
		 (id, user_id, type, method, sugar_grams, time_of_day,
		  ctx_steps, ctx_sleep_hours, ctx_heart_rate,
		  insight, suggested_action, action_completed, xp_earned, logged_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Type, l.Method, l.SugarGrams, l.TimeOfDay,
		nullableInt(l.Context.Steps), nullableFloat(l.Context.SleepHours), nullableInt(l.Context.HeartRate),
		l.Insight, l.SuggestedAction, l.ActionCompleted, l.XPEarned, l.LoggedAt.Unix(),
	)
	return err
}

// GetLog retrieves one log scoped to its owning user.
// Returns nil when no matching log exists.
func (d *DB) GetLog(userID, logID string) (*domain.SugarLog, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, type, method, sugar_grams, time_of_day,
		        ctx_steps, ctx_sleep_hours, ctx_heart_rate,
		        insight, suggested_action, action_completed, xp_earned, logged_at
		 FROM sugar_logs WHERE id = ? AND user_id = ?`, logID, userID,
	)
	return scanLog(row)
}

// ListLogs returns the user's most recent logs, newest first.
func (d *DB) ListLogs(userID string, limit int) ([]domain.SugarLog, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, type, method, sugar_grams, time_of_day,
		        ctx_steps, ctx_sleep_hours, ctx_heart_rate,
		        insight, suggested_action, action_completed, xp_earned, logged_at
		 FROM sugar_logs WHERE user_id = ?
		 ORDER BY logged_at DESC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.SugarLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// CompleteLogOnce flips action_completed false→true and stores the bumped
// XP in a single conditional update. Returns false when the flag was
// already set — a retried request cannot re-apply the completion award.
func (d *DB) CompleteLogOnce(logID string, xpEarned int) (bool, error) {
	res, err := d.db.Exec(
		`UPDATE sugar_logs SET action_completed = 1, xp_earned = ?
		 WHERE id = ? AND action_completed = 0`,
		xpEarned, logID,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ─── Rewards ────────────────────────────────────────────────────────────────

// InsertReward stores a granted reward.
func (d *DB) InsertReward(r domain.RewardRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO rewards (id, user_id, log_id, type, value, description, granted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.LogID, r.Type, r.Value, r.Description, r.GrantedAt.Unix(),
	)
	return err
}

// ListRewards returns the user's reward history, newest first.
func (d *DB) ListRewards(userID string, limit int) ([]domain.RewardRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, log_id, type, value, description, granted_at
		 FROM rewards WHERE user_id = ?
		 ORDER BY granted_at DESC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.RewardRecord
	for rows.Next() {
		var r domain.RewardRecord
		var granted int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.LogID, &r.Type, &r.Value, &r.Description, &granted); err != nil {
			return nil, err
		}
		r.GrantedAt = time.Unix(granted, 0).UTC()
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

// ─── Daily Health Metrics ───────────────────────────────────────────────────

// UpsertDailyHealth stores or replaces the health record for one day.
func (d *DB) UpsertDailyHealth(h domain.DailyHealth) error {
	_, err := d.db.Exec(
		`INSERT INTO health_metrics (user_id, date, steps, sleep_hours, avg_heart_rate)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
			steps=excluded.steps,
			sleep_hours=excluded.sleep_hours,
			avg_heart_rate=excluded.avg_heart_rate`,
		h.UserID, h.Date, nullableInt(h.Steps), nullableFloat(h.SleepHours), nullableInt(h.AvgHeartRate),
	)
	return err
}

// GetDailyHealth retrieves the health record for (user, date).
// Returns nil when no record exists — not an error.
func (d *DB) GetDailyHealth(userID, date string) (*domain.DailyHealth, error) {
	var h domain.DailyHealth
	var steps, heartRate sql.NullInt64
	var sleep sql.NullFloat64

	err := d.db.QueryRow(
		`SELECT user_id, date, steps, sleep_hours, avg_heart_rate
		 FROM health_metrics WHERE user_id = ? AND date = ?`, userID, date,
	).Scan(&h.UserID, &h.Date, &steps, &sleep, &heartRate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	h.Steps = fromNullInt(steps)
	h.SleepHours = fromNullFloat(sleep)
	h.AvgHeartRate = fromNullInt(heartRate)
	return &h, nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLog(s scanner) (*domain.SugarLog, error) {
	var l domain.SugarLog
	var steps, heartRate sql.NullInt64
	var sleep sql.NullFloat64
	var loggedAt int64

	err := s.Scan(&l.ID, &l.UserID, &l.Type, &l.Method, &l.SugarGrams, &l.TimeOfDay,
		&steps, &sleep, &heartRate,
		&l.Insight, &l.SuggestedAction, &l.ActionCompleted, &l.XPEarned, &loggedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	l.Context.Steps = fromNullInt(steps)
	l.Context.SleepHours = fromNullFloat(sleep)
	l.Context.HeartRate = fromNullInt(heartRate)
	l.LoggedAt = time.Unix(loggedAt, 0).UTC()
	return &l, nil
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
