package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

const tracerName = "github.com/Apurer/go-gin-travel-orders/internal/domains/users/adapters/observability"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, input userports.RegisterInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register")
	defer span.End()
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	span.SetAttributes(attribute.String("user.id", result.ID))
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "user registered", slog.String("user.id", result.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (userdomain.Token, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	token, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLoginFailure(ctx)
		return userdomain.Token{}, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.String("user.id", token.UserID))
	s.metrics.recordLogin(ctx)
	s.logInfo(ctx, "user logged in", slog.String("user.id", token.UserID))
	return token, nil
}

// Authenticate runs on every request, so failures are only logged at debug.
func (s *Service) Authenticate(ctx context.Context, raw string) (principal.Principal, userdomain.Token, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	p, token, err := s.inner.Authenticate(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelDebug, "authentication rejected", slog.String("error", err.Error()))
		return p, token, err
	}
	span.SetAttributes(attribute.String("user.id", p.UserID), attribute.Bool("user.is_admin", p.IsAdmin))
	return p, token, nil
}

func (s *Service) Me(ctx context.Context, caller principal.Principal) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Me", trace.WithAttributes(attribute.String("user.id", caller.UserID)))
	defer span.End()
	return s.inner.Me(ctx, caller)
}

func (s *Service) Logout(ctx context.Context, token userdomain.Token) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout", trace.WithAttributes(attribute.String("user.id", token.UserID)))
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed", slog.String("user.id", token.UserID))
	}
	s.logInfo(ctx, "user logged out", slog.String("user.id", token.UserID))
	return nil
}

func (s *Service) Refresh(ctx context.Context, token userdomain.Token) (userdomain.Token, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Refresh", trace.WithAttributes(attribute.String("user.id", token.UserID)))
	defer span.End()
	next, err := s.inner.Refresh(ctx, token)
	if err != nil {
		return userdomain.Token{}, s.handleError(ctx, span, err, "token refresh failed", slog.String("user.id", token.UserID))
	}
	return next, nil
}

func (s *Service) PromoteToAdmin(ctx context.Context, caller principal.Principal, userID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.PromoteToAdmin", trace.WithAttributes(
		attribute.String("user.id", caller.UserID),
		attribute.String("target.user.id", userID)))
	defer span.End()
	promoted, err := s.inner.PromoteToAdmin(ctx, caller, userID)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to promote user", slog.String("target.user.id", userID))
	}
	span.SetAttributes(attribute.Bool("user.promoted", promoted))
	if promoted {
		s.metrics.recordPromotion(ctx)
	}
	return promoted, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	registered    metric.Int64Counter
	logins        metric.Int64Counter
	loginFailures metric.Int64Counter
	promotions    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of users registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of successful logins"))
	failures, _ := m.Int64Counter("users.service.login_failures", metric.WithDescription("Number of rejected logins"))
	promotions, _ := m.Int64Counter("users.service.admin_promotions", metric.WithDescription("Number of users promoted to admin"))
	return serviceMetrics{registered: registered, logins: logins, loginFailures: failures, promotions: promotions}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLoginFailure(ctx context.Context) {
	if m.loginFailures != nil {
		m.loginFailures.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPromotion(ctx context.Context) {
	if m.promotions != nil {
		m.promotions.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
