package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authService "github.com/allisson/schoolsite/internal/auth/service"
	apperrors "github.com/allisson/schoolsite/internal/errors"
)

const verifyBatchSize = 500

// auditLogUseCase implements AuditLogUseCase.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
	signer       authService.AuditSigner
}

// newAuditLog builds an unsigned entry from request metadata.
func newAuditLog(
	event authDomain.AuditEvent,
	actorID, subjectID, email string,
	meta authDomain.RequestMeta,
	metadata map[string]any,
) *authDomain.AuditLog {
	return &authDomain.AuditLog{
		RequestID: meta.RequestID,
		Event:     event,
		ActorID:   actorID,
		SubjectID: subjectID,
		Email:     email,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Metadata:  metadata,
	}
}

// Record assigns a UUIDv7 and a microsecond precision timestamp so the
// signature survives a database round trip, then signs and persists the log.
func (a *auditLogUseCase) Record(ctx context.Context, auditLog *authDomain.AuditLog) error {
	auditLog.ID = uuid.Must(uuid.NewV7())
	auditLog.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	signature, err := a.signer.Sign(auditLog)
	if err != nil {
		return apperrors.Wrap(err, "failed to sign audit log")
	}
	auditLog.Signature = signature
	auditLog.KeyID = authDomain.AuditSignatureKeyID
	auditLog.IsSigned = true

	if err := a.auditLogRepo.Create(ctx, auditLog); err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}
	return nil
}

// List retrieves audit logs newest first.
func (a *auditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	auditLogs, err := a.auditLogRepo.List(ctx, offset, limit, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	return auditLogs, nil
}

// VerifyBatch pages through the range and checks every signature. Unsigned
// rows are counted but never treated as invalid.
func (a *auditLogUseCase) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*VerificationReport, error) {
	report := &VerificationReport{InvalidLogs: make([]uuid.UUID, 0)}
	filter := authDomain.AuditLogFilter{Since: &start, Until: &end}

	for offset := 0; ; offset += verifyBatchSize {
		auditLogs, err := a.auditLogRepo.List(ctx, offset, verifyBatchSize, filter)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit logs")
		}

		for _, auditLog := range auditLogs {
			report.TotalChecked++

			if !auditLog.IsSigned {
				report.UnsignedCount++
				continue
			}
			report.SignedCount++

			if err := a.signer.Verify(auditLog); err != nil {
				report.InvalidCount++
				report.InvalidLogs = append(report.InvalidLogs, auditLog.ID)
				continue
			}
			report.ValidCount++
		}

		if len(auditLogs) < verifyBatchSize {
			return report, nil
		}
	}
}

// DeleteOlderThan computes the cutoff as now minus days.
func (a *auditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be zero or greater")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	count, err := a.auditLogRepo.DeleteOlderThan(ctx, cutoff, dryRun)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}
	return count, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository, signer authService.AuditSigner) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
		signer:       signer,
	}
}
