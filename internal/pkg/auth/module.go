package auth

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodshare/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger `optional:"true"`
}

func newTokenStrategy(p strategyParams) Strategy {
	opts := Options{TTL: p.Config.TokenTTL}

	var s Strategy
	if p.Config.AuthStrategy == "jwt" {
		s = NewJWTStrategy(p.Config.AuthSecret, opts)
	} else {
		s = NewHMACStrategy(p.Config.AuthSecret, opts)
	}

	if p.Logger != nil {
		p.Logger.Info("auth token strategy selected", slog.String("strategy", s.Name()))
	}
	return s
}
