package services

import (
	"context"
	"log"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/adapters/persistence/repositories"
)

// AuditService writes and reads the append-only audit trail
type AuditService struct {
	auditRepo repositories.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record appends an audit entry. Auditing is best effort: a failed write
// never fails the operation being audited.
func (s *AuditService) Record(ctx context.Context, action, details, actor string) {
	entry := &models.AuditLog{
		Action:  action,
		Details: details,
		Actor:   actor,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
	}
}

// List returns audit entries newest first
func (s *AuditService) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, offset, limit)
}
