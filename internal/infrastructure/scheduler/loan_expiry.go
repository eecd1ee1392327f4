// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// loanDeactivator is the slice of the loan repository the job needs.
type loanDeactivator interface {
	DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error)
}

// LoanExpiryJob deactivates loans whose end date has passed. It runs once a
// day and once at startup so a restarted service catches up immediately.
type LoanExpiryJob struct {
	loans  loanDeactivator
	logger *slog.Logger
	cron   *cron.Cron
}

func NewLoanExpiryJob(loans loanDeactivator, logger *slog.Logger) *LoanExpiryJob {
	return &LoanExpiryJob{
		loans:  loans,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the daily run and performs an immediate catch-up pass.
func (j *LoanExpiryJob) Start() error {
	if _, err := j.cron.AddFunc("@daily", j.run); err != nil {
		return err
	}
	j.cron.Start()
	go j.run()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (j *LoanExpiryJob) Stop() {
	<-j.cron.Stop().Done()
}

func (j *LoanExpiryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	deactivated, err := j.loans.DeactivateExpired(ctx, now)
	if err != nil {
		j.logger.ErrorContext(ctx, "loan expiry run failed", slog.String("error", err.Error()))
		return
	}
	if deactivated > 0 {
		j.logger.InfoContext(ctx, "deactivated expired loans", slog.Int64("count", deactivated))
	}
}
