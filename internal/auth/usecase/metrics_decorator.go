package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/metrics"
)

const metricsDomain = "auth"

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	email, password string,
	meta authDomain.RequestMeta,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, email, password, meta)
	metrics.Observe(ctx, s.metrics, metricsDomain, "session_login", start, err)
	return output, err
}

func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Admin, error) {
	start := time.Now()
	admin, err := s.next.Authenticate(ctx, token)
	metrics.Observe(ctx, s.metrics, metricsDomain, "session_authenticate", start, err)
	return admin, err
}

func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, token string, meta authDomain.RequestMeta) error {
	start := time.Now()
	err := s.next.Logout(ctx, token, meta)
	metrics.Observe(ctx, s.metrics, metricsDomain, "session_logout", start, err)
	return err
}

// passwordResetUseCaseWithMetrics decorates PasswordResetUseCase with metrics instrumentation.
type passwordResetUseCaseWithMetrics struct {
	next    PasswordResetUseCase
	metrics metrics.BusinessMetrics
}

// NewPasswordResetUseCaseWithMetrics wraps a PasswordResetUseCase with metrics recording.
func NewPasswordResetUseCaseWithMetrics(
	useCase PasswordResetUseCase,
	m metrics.BusinessMetrics,
) PasswordResetUseCase {
	return &passwordResetUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *passwordResetUseCaseWithMetrics) RequestReset(
	ctx context.Context,
	email string,
	meta authDomain.RequestMeta,
) error {
	start := time.Now()
	err := p.next.RequestReset(ctx, email, meta)
	metrics.Observe(ctx, p.metrics, metricsDomain, "password_reset_request", start, err)
	return err
}

func (p *passwordResetUseCaseWithMetrics) ConfirmReset(
	ctx context.Context,
	token, newPassword string,
	meta authDomain.RequestMeta,
) error {
	start := time.Now()
	err := p.next.ConfirmReset(ctx, token, newPassword, meta)
	metrics.Observe(ctx, p.metrics, metricsDomain, "password_reset_confirm", start, err)
	return err
}

// adminUseCaseWithMetrics decorates AdminUseCase with metrics instrumentation.
type adminUseCaseWithMetrics struct {
	next    AdminUseCase
	metrics metrics.BusinessMetrics
}

// NewAdminUseCaseWithMetrics wraps an AdminUseCase with metrics recording.
func NewAdminUseCaseWithMetrics(useCase AdminUseCase, m metrics.BusinessMetrics) AdminUseCase {
	return &adminUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *adminUseCaseWithMetrics) Create(
	ctx context.Context,
	actorID string,
	input *authDomain.CreateAdminInput,
	meta authDomain.RequestMeta,
) (*authDomain.Admin, error) {
	start := time.Now()
	admin, err := a.next.Create(ctx, actorID, input, meta)
	metrics.Observe(ctx, a.metrics, metricsDomain, "admin_create", start, err)
	return admin, err
}

func (a *adminUseCaseWithMetrics) Update(
	ctx context.Context,
	actorID, id string,
	input *authDomain.UpdateAdminInput,
	meta authDomain.RequestMeta,
) (*authDomain.Admin, error) {
	start := time.Now()
	admin, err := a.next.Update(ctx, actorID, id, input, meta)
	metrics.Observe(ctx, a.metrics, metricsDomain, "admin_update", start, err)
	return admin, err
}

func (a *adminUseCaseWithMetrics) Get(ctx context.Context, id string) (*authDomain.Admin, error) {
	start := time.Now()
	admin, err := a.next.Get(ctx, id)
	metrics.Observe(ctx, a.metrics, metricsDomain, "admin_get", start, err)
	return admin, err
}

func (a *adminUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error) {
	start := time.Now()
	admins, err := a.next.List(ctx, offset, limit)
	metrics.Observe(ctx, a.metrics, metricsDomain, "admin_list", start, err)
	return admins, err
}

func (a *adminUseCaseWithMetrics) Delete(
	ctx context.Context,
	actorID, id string,
	meta authDomain.RequestMeta,
) error {
	start := time.Now()
	err := a.next.Delete(ctx, actorID, id, meta)
	metrics.Observe(ctx, a.metrics, metricsDomain, "admin_delete", start, err)
	return err
}
