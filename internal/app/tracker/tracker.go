// Package tracker wires the feedback engine to persistent storage.
// The engine itself is pure; this service owns the read-compute-write
// cycle around it and closes the concurrent-update race on a user's
// gamification state with a conditional write and retry.
package tracker

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sugarlog-app/sugarlog/internal/app/engagement"
	"github.com/sugarlog-app/sugarlog/internal/domain"
	"github.com/sugarlog-app/sugarlog/internal/infra/metrics"
	"github.com/sugarlog-app/sugarlog/internal/infra/sqlite"
)

// Two simultaneous calls for the same user both read the same prior
// state; the conditional write makes the loser re-read instead of
// silently clobbering. Three attempts is plenty for a personal tracker.
const casAttempts = 3

// Service handles the log and complete-action flows for all users.
type Service struct {
	db     *sqlite.DB
	engine *engagement.Engine
}

// NewService creates a tracker service with the default engine.
func NewService(db *sqlite.DB) *Service {
	return NewServiceWithEngine(db, engagement.DefaultEngine())
}

// NewServiceWithEngine allows injecting a deterministic engine for tests.
func NewServiceWithEngine(db *sqlite.DB, engine *engagement.Engine) *Service {
	return &Service{db: db, engine: engine}
}

// LogOutcome is what a single logged event returns to the caller.
type LogOutcome struct {
	Log      domain.SugarLog          `json:"log"`
	Insight  string                   `json:"insight"`
	Action   string                   `json:"suggested_action"`
	XPEarned int                      `json:"xp_earned"`
	Reward   domain.RewardRecord      `json:"reward"`
	State    domain.GamificationState `json:"state"`
}

// LogEvent records one intake for the user and returns the feedback
// bundle. The user row is auto-created on first contact.
func (s *Service) LogEvent(userID string, in engagement.LogInput) (*LogOutcome, error) {
	if err := s.db.EnsureUser(userID); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	var res engagement.LogResult
	err := s.withStateRetry(userID, func(prior domain.GamificationState) (domain.GamificationState, error) {
		health, err := s.db.GetDailyHealth(userID, domain.DateKey(s.engine.Now()))
		if err != nil {
			return prior, fmt.Errorf("fetch health metrics: %w", err)
		}

		res, err = s.engine.LogEvent(prior, health, in)
		if err != nil {
			return prior, err
		}
		return res.State, nil
	})
	if err != nil {
		return nil, err
	}

	log := res.Log
	log.ID = uuid.NewString()
	log.UserID = userID
	if err := s.db.InsertLog(log); err != nil {
		return nil, fmt.Errorf("persist log: %w", err)
	}

	reward := res.Reward
	reward.ID = uuid.NewString()
	reward.UserID = userID
	reward.LogID = log.ID
	if err := s.db.InsertReward(reward); err != nil {
		return nil, fmt.Errorf("persist reward: %w", err)
	}

	metrics.LogsRecorded.WithLabelValues(string(log.Method)).Inc()
	metrics.XPAwarded.Add(float64(res.XPEarned))
	metrics.RewardsGranted.WithLabelValues(string(reward.Type)).Inc()
	metrics.StreakDays.Set(float64(res.State.Streak))

	return &LogOutcome{
		Log:      log,
		Insight:  log.Insight,
		Action:   log.SuggestedAction,
		XPEarned: res.XPEarned,
		Reward:   reward,
		State:    res.State,
	}, nil
}

// CompleteOutcome is the result of confirming a suggested action.
type CompleteOutcome struct {
	Log   domain.SugarLog          `json:"log"`
	State domain.GamificationState `json:"state"`
}

// CompleteAction marks a log's suggested action as done and applies the
// completion XP award. Idempotent on the flag: confirming twice leaves
// the log unchanged after the first call, and the conditional update on
// the log row keeps a retried request from re-applying XP.
func (s *Service) CompleteAction(userID, logID string) (*CompleteOutcome, error) {
	log, err := s.db.GetLog(userID, logID)
	if err != nil {
		return nil, fmt.Errorf("fetch log: %w", err)
	}
	if log == nil {
		return nil, domain.ErrLogNotFound
	}

	state, err := s.db.GetUserState(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user state: %w", err)
	}

	if log.ActionCompleted {
		return &CompleteOutcome{Log: *log, State: state}, nil
	}

	updated, _, applied := s.engine.CompleteAction(state, *log)
	if !applied {
		return &CompleteOutcome{Log: *log, State: state}, nil
	}

	// Flip the flag first: if this loses a race the XP is not applied.
	flipped, err := s.db.CompleteLogOnce(logID, updated.XPEarned)
	if err != nil {
		return nil, fmt.Errorf("complete log: %w", err)
	}
	if !flipped {
		fresh, err := s.db.GetLog(userID, logID)
		if err != nil || fresh == nil {
			return nil, domain.ErrLogNotFound
		}
		return &CompleteOutcome{Log: *fresh, State: state}, nil
	}

	delta := int64(updated.XPEarned - log.XPEarned)
	err = s.withStateRetry(userID, func(prior domain.GamificationState) (domain.GamificationState, error) {
		next := prior
		next.XP += delta
		next.Level = engagement.LevelForXP(next.XP)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	finalState, err := s.db.GetUserState(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user state: %w", err)
	}

	metrics.ActionsCompleted.Inc()
	metrics.XPAwarded.Add(float64(delta))

	return &CompleteOutcome{Log: updated, State: finalState}, nil
}

// Profile returns the user's current gamification state.
func (s *Service) Profile(userID string) (domain.GamificationState, error) {
	return s.db.GetUserState(userID)
}

// Logs returns the user's recent logs.
func (s *Service) Logs(userID string, limit int) ([]domain.SugarLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListLogs(userID, limit)
}

// Rewards returns the user's reward history.
func (s *Service) Rewards(userID string, limit int) ([]domain.RewardRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListRewards(userID, limit)
}

// RecordHealth upserts the daily health-metrics record used for context
// merging.
func (s *Service) RecordHealth(h domain.DailyHealth) error {
	if err := s.db.EnsureUser(h.UserID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return s.db.UpsertDailyHealth(h)
}

// withStateRetry runs a read-compute-write cycle on the user's
// gamification state, retrying on CAS conflicts.
func (s *Service) withStateRetry(userID string, compute func(domain.GamificationState) (domain.GamificationState, error)) error {
	var lastErr error
	for attempt := 0; attempt < casAttempts; attempt++ {
		prior, err := s.db.GetUserState(userID)
		if err != nil {
			return fmt.Errorf("fetch user state: %w", err)
		}

		next, err := compute(prior)
		if err != nil {
			return err
		}

		err = s.db.UpdateUserStateCAS(userID, prior, next)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrStateConflict) {
			return fmt.Errorf("update user state: %w", err)
		}
		metrics.StateConflicts.Inc()
		lastErr = err
	}
	return lastErr
}
