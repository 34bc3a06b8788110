package infra

import (
	"github.com/aakash/content-server/config"
	"github.com/aakash/content-server/infra/produce"
)

type Infra struct {
	Redis       *RedisClient
	Postgres    *PostgresClient
	Logger      *LoggerClient
	RabbitMQ    *RabbitMQClient
	ObjectStore *ObjectStoreClient
	Telemetry   *TelemetryClient
	Produce     *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	objectStore := InitObjectStoreClient(cfg.EnvConfig)
	if objectStore == nil {
		panic("Failed to initialize object store service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	// Telemetry is optional - enabled only when an OTLP endpoint is configured
	telemetry := InitTelemetryClient(cfg.EnvConfig)

	infraInstance = &Infra{
		Redis:       redis,
		Postgres:    postgres,
		Logger:      logger,
		RabbitMQ:    rabbitMQ,
		ObjectStore: objectStore,
		Telemetry:   telemetry,
		Produce:     produceService,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
