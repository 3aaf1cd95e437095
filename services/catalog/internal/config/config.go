package config

import (
	pkgconfig "github.com/Skotchmaster/ecommerce_hub/pkg/config"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/events"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/search"
)

type Config struct {
	pkgconfig.Common

	KafkaBrokers []string
	KafkaTopic   string

	ElasticURL      string
	ElasticUsername string
	ElasticPassword string
	ElasticIndex    string

	SeedDemo bool
}

func Load() Config {
	common := pkgconfig.LoadCommon("catalog")
	common.JWTSecret = pkgconfig.MustNonEmptyBytes(common.JWTSecret, "JWT_SECRET")

	return Config{
		Common: common,

		KafkaBrokers: pkgconfig.CSV(pkgconfig.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopic:   pkgconfig.EnvDefault("KAFKA_TOPIC", events.TopicProductEvents),

		ElasticURL:      pkgconfig.EnvDefault("ELASTICSEARCH_URL", ""),
		ElasticUsername: pkgconfig.EnvDefault("ELASTICSEARCH_USERNAME", ""),
		ElasticPassword: pkgconfig.EnvDefault("ELASTICSEARCH_PASSWORD", ""),
		ElasticIndex:    pkgconfig.EnvDefault("ELASTICSEARCH_INDEX", search.DefaultIndex),

		SeedDemo: pkgconfig.EnvBoolDefault("CATALOG_SEED_DEMO", false),
	}
}
