package store

import (
	"context"
	"errors"

	"github.com/shoalhq/shoal/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when creating a user whose email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// PlanStats holds aggregate statistics over all saved plans.
type PlanStats struct {
	Total         int            `json:"total"`
	AvgScore      float64        `json:"avg_score"`
	AvgTankLitres float64        `json:"avg_tank_l"`
	CountByScore  map[string]int `json:"count_by_score_band"`
	DistinctUsers int            `json:"distinct_users"`
}

// Store defines the persistence operations for users and plans.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertUserByEmail(ctx context.Context, email, name string) (*model.User, error)

	SavePlan(ctx context.Context, p *model.Plan) error
	GetPlan(ctx context.Context, id string) (*model.Plan, error)
	LatestPlan(ctx context.Context, userID string) (*model.Plan, error)
	ListPlans(ctx context.Context, userID string, limit, offset int) ([]*model.Plan, int, error)
	GetPlanStats(ctx context.Context) (*PlanStats, error)

	Close() error
}
