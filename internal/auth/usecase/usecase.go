package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/aurora-api/aurora/internal/auth/entity"
	"github.com/aurora-api/aurora/internal/pkg/clock"
	"github.com/aurora-api/aurora/internal/pkg/config"
	"github.com/aurora-api/aurora/internal/pkg/hash"
	"github.com/aurora-api/aurora/internal/pkg/idempotency"
	"github.com/aurora-api/aurora/internal/pkg/instrument"
	"github.com/aurora-api/aurora/internal/pkg/otp"
	"github.com/aurora-api/aurora/internal/pkg/session"
	"github.com/aurora-api/aurora/internal/pkg/uid"
	"github.com/aurora-api/aurora/internal/pkg/validator"
)

// OTPIssuedEvent announces a persisted one-time code to interested
// consumers (email delivery lives in the notification module).
type OTPIssuedEvent struct {
	UserID    int64
	Email     string
	FullName  string
	Code      string
	Purpose   entity.OTPPurpose
	ExpiresAt time.Time
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, user entity.NewUser) error

	CountRecentOTPs(ctx context.Context, userID int64, since time.Time) (int64, error)
	CreateOTP(ctx context.Context, in entity.NewOTP) error
	GetOTPCandidates(ctx context.Context, userID int64, purpose entity.OTPPurpose, now time.Time, limit int32) ([]entity.OTPRecord, error)
	ConsumeOTP(ctx context.Context, in entity.ConsumeOTP) (bool, error)
	DeleteUnconsumedOTPs(ctx context.Context, userID int64) (int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	password      hash.Hash
	otp           otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	session       session.Session
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Password      hash.Hash
	OTP           otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	Session       session.Session
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		password:      dep.Password,
		otp:           dep.OTP,
		uid:           dep.UID,
		clock:         dep.Clock,
		session:       dep.Session,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}
