package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/aurora-api/aurora/internal/pkg/clock"
	"github.com/aurora-api/aurora/internal/pkg/config"
	"github.com/aurora-api/aurora/internal/pkg/goroutine"
	"github.com/aurora-api/aurora/internal/pkg/hash"
	"github.com/aurora-api/aurora/internal/pkg/idempotency"
	"github.com/aurora-api/aurora/internal/pkg/instrument"
	"github.com/aurora-api/aurora/internal/pkg/mail"
	"github.com/aurora-api/aurora/internal/pkg/messaging"
	"github.com/aurora-api/aurora/internal/pkg/otp"
	"github.com/aurora-api/aurora/internal/pkg/router"
	"github.com/aurora-api/aurora/internal/pkg/session"
	"github.com/aurora-api/aurora/internal/pkg/uid"
	"github.com/aurora-api/aurora/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	password  hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otpGen    otp.Generator

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	session   session.Session

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initSession()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
