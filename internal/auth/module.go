package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurora-api/aurora/internal/auth/inbound"
	"github.com/aurora-api/aurora/internal/auth/outbound/db"
	"github.com/aurora-api/aurora/internal/auth/outbound/mq"
	"github.com/aurora-api/aurora/internal/auth/usecase"
	"github.com/aurora-api/aurora/internal/pkg/clock"
	"github.com/aurora-api/aurora/internal/pkg/config"
	"github.com/aurora-api/aurora/internal/pkg/hash"
	"github.com/aurora-api/aurora/internal/pkg/idempotency"
	"github.com/aurora-api/aurora/internal/pkg/instrument"
	"github.com/aurora-api/aurora/internal/pkg/messaging"
	"github.com/aurora-api/aurora/internal/pkg/otp"
	"github.com/aurora-api/aurora/internal/pkg/router"
	"github.com/aurora-api/aurora/internal/pkg/session"
	"github.com/aurora-api/aurora/internal/pkg/uid"
	"github.com/aurora-api/aurora/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Password    hash.Hash                  `validate:"required"`
	OTP         otp.Generator              `validate:"required"`
	Session     session.Session            `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Password:      dep.Password,
		OTP:           dep.OTP,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Session:       dep.Session,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
