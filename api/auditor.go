/*
auditor.go - Periodic revalidation of stored profiles

PURPOSE:
  Profiles are validated when created, but the store can outlive the locale
  table and zone aliases it was validated against, and rows may be edited
  outside the API. The auditor periodically resolves every stored region
  again and reports the ones that no longer resolve.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Checks once immediately on start
  - Invalid profiles are logged and counted in a gauge; they are never
    deleted

USAGE:
  auditor := NewProfileAuditor(profiles, registry, metrics, logger)
  auditor.Start(time.Hour)
  // ... later
  auditor.Stop()

SEE ALSO:
  - profile/profile.go: Validator
  - metrics.go: region_engine_invalid_profiles
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/region-engine/profile"
)

// AuditReport is the outcome of one pass.
type AuditReport struct {
	Checked int
	Invalid []string
}

// ProfileAuditor revalidates stored profiles on a ticker.
type ProfileAuditor struct {
	profiles  *profile.Service
	validator profile.Validator
	metrics   *Metrics
	logger    *slog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewProfileAuditor(profiles *profile.Service, validator profile.Validator, metrics *Metrics, logger *slog.Logger) *ProfileAuditor {
	return &ProfileAuditor{
		profiles:  profiles,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Start begins periodic audits. A non-positive interval disables the
// auditor; starting twice is a no-op.
func (a *ProfileAuditor) Start(interval time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if interval <= 0 {
		a.logger.Info("profile auditor disabled")
		return
	}
	if a.ticker != nil {
		return
	}

	a.ticker = time.NewTicker(interval)
	a.stop = make(chan struct{})
	a.wg.Add(1)
	go a.run()

	a.logger.Info("profile auditor started", "interval", interval)
}

// Stop halts the auditor and waits for a running pass to finish.
func (a *ProfileAuditor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	close(a.stop)
	a.wg.Wait()
	a.ticker = nil
	a.logger.Info("profile auditor stopped")
}

func (a *ProfileAuditor) run() {
	defer a.wg.Done()

	a.audit()
	for {
		select {
		case <-a.ticker.C:
			a.audit()
		case <-a.stop:
			return
		}
	}
}

func (a *ProfileAuditor) audit() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := a.Check(ctx); err != nil {
		a.logger.Error("profile audit failed", "err", err)
	}
}

// Check runs one pass and updates the gauge.
func (a *ProfileAuditor) Check(ctx context.Context) (AuditReport, error) {
	profiles, err := a.profiles.List(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{Checked: len(profiles)}
	for _, p := range profiles {
		if err := a.validator.Validate(p.Region); err != nil {
			report.Invalid = append(report.Invalid, p.Name)
			a.logger.Warn("stored profile no longer resolves", "name", p.Name, "region", p.Region.String(), "err", err)
		}
	}

	a.metrics.InvalidProfiles.Set(float64(len(report.Invalid)))
	a.logger.Debug("profile audit completed", "checked", report.Checked, "invalid", len(report.Invalid))
	return report, nil
}
