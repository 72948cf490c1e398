package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IntegrityJob looks for appliances whose customer is gone. Those would make
// UpcomingReminders fail, so each one is logged at error level.
type IntegrityJob struct {
	registry *Registry
	log      *zap.Logger
}

func NewIntegrityJob(registry *Registry, log *zap.Logger) *IntegrityJob {
	return &IntegrityJob{registry: registry, log: log}
}

// Run implements cron.Job.
func (j *IntegrityJob) Run() {
	j.Check(context.Background())
}

// Check returns the number of orphaned appliances found, or -1 when the
// registry could not be read.
func (j *IntegrityJob) Check(ctx context.Context) int {
	orphans, err := j.registry.CheckIntegrity(ctx)
	if err != nil {
		j.log.Error("integrity check failed", zap.Error(err))
		return -1
	}

	for _, a := range orphans {
		j.log.Error("appliance references missing customer",
			zap.Stringer("appliance_id", a.ID),
			zap.Stringer("customer_id", a.CustomerID),
		)
	}
	j.log.Info("integrity check completed", zap.Int("orphaned_appliances", len(orphans)))
	return len(orphans)
}

// StartIntegrityScheduler runs job on the given cron spec, e.g. "@every 1h"
// or "0 3 * * *". The caller stops the returned scheduler.
func StartIntegrityScheduler(spec string, job *IntegrityJob) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("schedule integrity check %q: %w", spec, err)
	}
	c.Start()
	job.log.Info("integrity scheduler started", zap.String("schedule", spec))
	return c, nil
}
