package inbound

import (
	"context"

	"github.com/aurora-api/aurora/internal/auth/usecase"
	"github.com/aurora-api/aurora/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Logout(ctx context.Context) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/auth/login", end.Login)
	r.POST("/auth/verify", end.Verify)
	r.POST("/auth/register", end.Register)
	r.POST("/auth/logout", end.Logout) // need authenticated
}
