package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/core/domain"
)

// OverdueService runs the daily sweep moving active loans past their
// maturity date to overdue.
type OverdueService struct {
	loanRepo repositories.LoanRepository
	audit    *AuditService
	cron     *cron.Cron
}

// NewOverdueService creates a new overdue service
func NewOverdueService(loanRepo repositories.LoanRepository, audit *AuditService) *OverdueService {
	return &OverdueService{
		loanRepo: loanRepo,
		audit:    audit,
		cron:     cron.New(),
	}
}

// Start schedules the sweep every day at 06:30
func (s *OverdueService) Start() {
	s.cron.AddFunc("30 6 * * *", func() {
		count, err := s.Sweep(context.Background(), time.Now())
		if err != nil {
			log.Printf("overdue sweep failed: %v", err)
			return
		}
		if count > 0 {
			log.Printf("overdue sweep: %d loan(s) marked overdue", count)
		}
	})
	s.cron.Start()
}

// Stop stops the scheduler
func (s *OverdueService) Stop() {
	s.cron.Stop()
}

// Sweep marks every active loan whose maturity date has passed as overdue
// and returns how many loans were moved.
func (s *OverdueService) Sweep(ctx context.Context, now time.Time) (int, error) {
	loans, err := s.loanRepo.ListByStatus(ctx, domain.LoanActive)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, loan := range loans {
		if loan.MaturityDate().After(now) {
			continue
		}

		loan.Status = string(domain.LoanOverdue)
		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return count, err
		}

		s.audit.Record(ctx, domain.AuditOverdueSweep,
			fmt.Sprintf("Prêt %s passé en retard (échéance %s)",
				loan.Reference, loan.MaturityDate().Format("2006-01-02")), "system")
		count++
	}

	return count, nil
}
