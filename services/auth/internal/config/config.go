package config

import (
	"time"

	pkgconfig "github.com/Skotchmaster/ecommerce_hub/pkg/config"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/service"
)

type Config struct {
	pkgconfig.Common

	AccessTTL    time.Duration
	SecureCookie bool

	LoginRPS   float64
	LoginBurst int

	SeedDemo bool
}

func Load() Config {
	common := pkgconfig.LoadCommon("auth")
	common.JWTSecret = pkgconfig.MustNonEmptyBytes(common.JWTSecret, "JWT_SECRET")

	return Config{
		Common: common,

		AccessTTL:    pkgconfig.EnvDurationDefault("ACCESS_TOKEN_TTL", service.DefaultAccessTTL),
		SecureCookie: pkgconfig.EnvBoolDefault("COOKIE_SECURE", false),

		LoginRPS:   pkgconfig.EnvFloatDefault("LOGIN_RATE_RPS", 1),
		LoginBurst: pkgconfig.EnvIntDefault("LOGIN_RATE_BURST", 5),

		SeedDemo: pkgconfig.EnvBoolDefault("AUTH_SEED_DEMO", false),
	}
}
