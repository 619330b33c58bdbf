// Package metrics provides Prometheus metrics for SugarLog.
// Counters and gauges for logged events, XP, rewards, and health checks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Logging ────────────────────────────────────────────────────────────────

// LogsRecorded tracks logged intake events by capture method.
var LogsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sugarlog",
	Name:      "logs_recorded_total",
	Help:      "Total sugar intake events logged.",
}, []string{"method"})

// ActionsCompleted tracks confirmed suggested actions.
var ActionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sugarlog",
	Name:      "actions_completed_total",
	Help:      "Total suggested actions confirmed completed.",
})

// ─── Engagement ─────────────────────────────────────────────────────────────

// XPAwarded tracks total experience points granted.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sugarlog",
	Name:      "xp_awarded_total",
	Help:      "Total XP granted across all feedback events.",
})

// RewardsGranted tracks granted rewards by type.
var RewardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sugarlog",
	Name:      "rewards_granted_total",
	Help:      "Total rewards granted by type.",
}, []string{"type"})

// StreakDays reports the streak length from the most recent update.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sugarlog",
	Name:      "streak_days",
	Help:      "Streak length after the most recent log.",
})

// StateConflicts tracks optimistic-concurrency retries on user state.
var StateConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sugarlog",
	Name:      "state_conflicts_total",
	Help:      "Total CAS conflicts on gamification state writes.",
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "sugarlog",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
