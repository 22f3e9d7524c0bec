package service

import (
	"context"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
)

type auditService struct {
	audit repository.AuditRepository
}

func NewAuditService(audit repository.AuditRepository) AuditService {
	return &auditService{audit: audit}
}

func (s *auditService) ListRecords(ctx context.Context, page, pageSize int32) ([]domain.AuditRecord, int64, error) {
	return s.audit.List(ctx, page, pageSize)
}
