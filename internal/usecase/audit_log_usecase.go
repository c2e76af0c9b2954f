package usecase

import (
	"context"
	"errors"

	"vet-clinic/internal/converter"
	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// defaultAuditLogLimit caps a listing when the caller sets no limit
const defaultAuditLogLimit = 100

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

// AuditLogUsecase exposes the audit trail to administrators
type AuditLogUsecase interface {
	GetAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	if query == nil {
		query = &dto.AuditLogQuery{}
	}
	filter := converter.AuditLogQueryToFilter(query)
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditLogLimit
	}

	logs, err := u.auditLogRepo.Find(ctx, filter)
	if err != nil {
		u.log.WithFields(logrus.Fields{
			"action": filter.Action,
			"entity": filter.Entity,
		}).Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return converter.AuditLogsToListResponse(logs), nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
