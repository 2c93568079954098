package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	outboxDomain "github.com/allisson/schoolsite/internal/outbox/domain"
)

// fakeTxManager runs fn inline and records how many transactions were opened.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type mockAdminRepository struct {
	mock.Mock
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *authDomain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *mockAdminRepository) Update(ctx context.Context, admin *authDomain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *mockAdminRepository) Get(ctx context.Context, id string) (*authDomain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Admin), args.Error(1)
}

func (m *mockAdminRepository) GetByEmail(ctx context.Context, email string) (*authDomain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Admin), args.Error(1)
}

func (m *mockAdminRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Admin), args.Error(1)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	args := m.Called(ctx, auditLog)
	return args.Error(0)
}

func (m *mockAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	args := m.Called(ctx, offset, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditLog), args.Error(1)
}

func (m *mockAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, cutoff, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

type mockOutboxRepository struct {
	mock.Mock
}

func (m *mockOutboxRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Verify(plain, hash string) bool {
	args := m.Called(plain, hash)
	return args.Bool(0)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) IssueSessionToken(claims authDomain.SessionClaims) (string, time.Time, error) {
	args := m.Called(claims)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenIssuer) VerifySessionToken(token string) (*authDomain.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionClaims), args.Error(1)
}

func (m *mockTokenIssuer) IssueResetToken(subjectID, fingerprint string) (string, time.Time, error) {
	args := m.Called(subjectID, fingerprint)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenIssuer) VerifyResetToken(token string) (*authDomain.ResetClaims, bool) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*authDomain.ResetClaims), args.Bool(1)
}

type mockDenylist struct {
	mock.Mock
}

func (m *mockDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *mockDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type mockAuditSigner struct {
	mock.Mock
}

func (m *mockAuditSigner) Sign(log *authDomain.AuditLog) ([]byte, error) {
	args := m.Called(log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockAuditSigner) Verify(log *authDomain.AuditLog) error {
	args := m.Called(log)
	return args.Error(0)
}

// mockAuditLogUseCase records audit entries passed to Record.
type mockAuditLogUseCase struct {
	mock.Mock
}

func (m *mockAuditLogUseCase) Record(ctx context.Context, auditLog *authDomain.AuditLog) error {
	args := m.Called(ctx, auditLog)
	return args.Error(0)
}

func (m *mockAuditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	args := m.Called(ctx, offset, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditLog), args.Error(1)
}

func (m *mockAuditLogUseCase) VerifyBatch(ctx context.Context, start, end time.Time) (*VerificationReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VerificationReport), args.Error(1)
}

func (m *mockAuditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// auditEvent matches an audit log by event type.
func auditEvent(event authDomain.AuditEvent) any {
	return mock.MatchedBy(func(log *authDomain.AuditLog) bool {
		return log.Event == event
	})
}
