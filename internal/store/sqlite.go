package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shoalhq/shoal/internal/model"

	_ "modernc.org/sqlite"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    name       TEXT NOT NULL,
    created_at DATETIME NOT NULL
)`

const createPlansTable = `
CREATE TABLE IF NOT EXISTS plans (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    selections TEXT NOT NULL,
    tank_l     INTEGER NOT NULL,
    tank_gal   REAL NOT NULL,
    score      INTEGER NOT NULL,
    warnings   TEXT NOT NULL,
    created_at DATETIME NOT NULL
)`

const createPlansUserIndex = `
CREATE INDEX IF NOT EXISTS idx_plans_user_created ON plans(user_id, created_at DESC)`

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	for _, stmt := range []string{createUsersTable, createPlansTable, createPlansUserIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user record.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, name, created_at) VALUES (?, ?, ?, ?)",
		u.ID, u.Email, u.Name, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, name, created_at FROM users WHERE id = ?", id))
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, name, created_at FROM users WHERE email = ?", email))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpsertUserByEmail returns the user with the given email, creating the
// account on first sign-in. The stored name is refreshed when the identity
// provider reports a new one.
func (s *SQLiteStore) UpsertUserByEmail(ctx context.Context, email, name string) (*model.User, error) {
	u, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		if name != "" && name != u.Name {
			if _, err := s.db.ExecContext(ctx,
				"UPDATE users SET name = ? WHERE id = ?", name, u.ID); err != nil {
				return nil, fmt.Errorf("update user name: %w", err)
			}
			u.Name = name
		}
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	u = &model.User{
		ID:        model.NewID(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SavePlan inserts a plan record. Selections and warnings are stored as JSON.
func (s *SQLiteStore) SavePlan(ctx context.Context, p *model.Plan) error {
	selections, err := json.Marshal(p.Selections)
	if err != nil {
		return fmt.Errorf("marshal selections: %w", err)
	}
	warnings, err := json.Marshal(p.Warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, user_id, selections, tank_l, tank_gal, score, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, string(selections), p.TankLitres, p.TankGallons, p.Score, string(warnings), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID.
func (s *SQLiteStore) GetPlan(ctx context.Context, id string) (*model.Plan, error) {
	return s.scanPlan(s.db.QueryRowContext(ctx,
		`SELECT id, user_id, selections, tank_l, tank_gal, score, warnings, created_at
		FROM plans WHERE id = ?`, id))
}

// LatestPlan retrieves the most recently created plan for a user.
func (s *SQLiteStore) LatestPlan(ctx context.Context, userID string) (*model.Plan, error) {
	return s.scanPlan(s.db.QueryRowContext(ctx,
		`SELECT id, user_id, selections, tank_l, tank_gal, score, warnings, created_at
		FROM plans WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, userID))
}

func (s *SQLiteStore) scanPlan(row *sql.Row) (*model.Plan, error) {
	p := &model.Plan{}
	var selections, warnings string
	err := row.Scan(&p.ID, &p.UserID, &selections, &p.TankLitres, &p.TankGallons, &p.Score, &warnings, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if err := json.Unmarshal([]byte(selections), &p.Selections); err != nil {
		return nil, fmt.Errorf("unmarshal selections: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &p.Warnings); err != nil {
		return nil, fmt.Errorf("unmarshal warnings: %w", err)
	}
	return p, nil
}

// ListPlans returns a paginated list of one user's plans ordered by
// created_at DESC, along with the total count of that user's plans.
func (s *SQLiteStore) ListPlans(ctx context.Context, userID string, limit, offset int) ([]*model.Plan, int, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM plans WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count plans: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, selections, tank_l, tank_gal, score, warnings, created_at
		FROM plans WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*model.Plan
	for rows.Next() {
		p := &model.Plan{}
		var selections, warnings string
		if err := rows.Scan(&p.ID, &p.UserID, &selections, &p.TankLitres, &p.TankGallons,
			&p.Score, &warnings, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(selections), &p.Selections); err != nil {
			return nil, 0, fmt.Errorf("unmarshal selections: %w", err)
		}
		if err := json.Unmarshal([]byte(warnings), &p.Warnings); err != nil {
			return nil, 0, fmt.Errorf("unmarshal warnings: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate plans: %w", err)
	}

	return plans, total, nil
}

// GetPlanStats aggregates statistics over all saved plans. Scores are
// bucketed into 25-point bands for the count breakdown.
func (s *SQLiteStore) GetPlanStats(ctx context.Context) (*PlanStats, error) {
	stats := &PlanStats{CountByScore: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(AVG(score), 0),
			COALESCE(AVG(tank_l), 0),
			COUNT(DISTINCT user_id)
		FROM plans`,
	).Scan(&stats.Total, &stats.AvgScore, &stats.AvgTankLitres, &stats.DistinctUsers)
	if err != nil {
		return nil, fmt.Errorf("plan stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT CASE
			WHEN score >= 75 THEN '75-100'
			WHEN score >= 50 THEN '50-74'
			WHEN score >= 25 THEN '25-49'
			ELSE '0-24'
		END AS band, COUNT(*)
		FROM plans GROUP BY band`,
	)
	if err != nil {
		return nil, fmt.Errorf("score bands: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var band string
		var count int
		if err := rows.Scan(&band, &count); err != nil {
			return nil, fmt.Errorf("scan score band: %w", err)
		}
		stats.CountByScore[band] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score bands: %w", err)
	}

	return stats, nil
}
