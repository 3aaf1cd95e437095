package config

import (
	pkgconfig "github.com/Skotchmaster/ecommerce_hub/pkg/config"
)

type Config struct {
	pkgconfig.Common

	AuthURL     string
	CatalogURL  string
	CORSOrigins []string
}

func Load() Config {
	return Config{
		Common: pkgconfig.LoadCommon("gateway"),

		AuthURL:     pkgconfig.MustNonEmpty(pkgconfig.EnvDefault("AUTH_URL", ""), "AUTH_URL"),
		CatalogURL:  pkgconfig.MustNonEmpty(pkgconfig.EnvDefault("CATALOG_URL", ""), "CATALOG_URL"),
		CORSOrigins: pkgconfig.CSV(pkgconfig.EnvDefault("CORS_ORIGINS", "*")),
	}
}
