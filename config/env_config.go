package config

import (
	"os"
	"strconv"
)

type EnvConfig struct {
	Postgres struct {
		Host     string
		Database string
		Username string
		Password string
		Port     string
	}
	Redis struct {
		Password string
		Database int
		Host     string
		Port     string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Endpoint     string
		AccessKey    string
		SecretKey    string
		UseSSL       bool
		Bucket       string
		PublicURL    string
		PartSize     int64 // multipart threshold and chunk size in bytes
		PresignHours int
	}
	WorkerPool struct {
		Workers     int
		QueueSize   int
		TaskTimeout int // seconds
	}
	RateLimit struct {
		PerSecond float64
		Burst     int
	}
	Images struct {
		ResizeConfigFile string
	}
	Telemetry struct {
		OTLPEndpoint string
		ServiceName  string
	}
	CORS struct {
		AllowDomains string
	}
	Server struct {
		Port string
	}
	Environment struct {
		Mode string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.Host = os.Getenv("POSTGRES_HOST")
	config.Postgres.Database = os.Getenv("POSTGRES_DB")
	config.Postgres.Username = os.Getenv("POSTGRES_USER")
	config.Postgres.Password = os.Getenv("POSTGRES_PASSWORD")
	config.Postgres.Port = os.Getenv("POSTGRES_PORT")
	if config.Postgres.Port == "" {
		config.Postgres.Port = "5432"
	}

	// Redis
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.Host = os.Getenv("REDIS_HOST")
	config.Redis.Port = os.Getenv("REDIS_PORT")
	if config.Redis.Port == "" {
		config.Redis.Port = "6379"
	}

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	if config.RabbitMQ.Host == "" {
		config.RabbitMQ.Host = "localhost"
	}
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	// MinIO
	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	config.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	config.Minio.Bucket = os.Getenv("MINIO_BUCKET")
	if config.Minio.Bucket == "" {
		config.Minio.Bucket = "content-server"
	}
	config.Minio.PublicURL = os.Getenv("MINIO_PUBLIC_URL")
	if partSizeStr := os.Getenv("MINIO_PART_SIZE"); partSizeStr != "" {
		if partSize, err := strconv.ParseInt(partSizeStr, 10, 64); err == nil && partSize > 0 {
			config.Minio.PartSize = partSize
		}
	}
	if config.Minio.PartSize == 0 {
		config.Minio.PartSize = 5 * 1024 * 1024 // 5 MiB parts
	}
	config.Minio.PresignHours, _ = strconv.Atoi(os.Getenv("MINIO_PRESIGN_HOURS"))
	if config.Minio.PresignHours == 0 {
		config.Minio.PresignHours = 30 * 24
	}

	// Worker pool
	config.WorkerPool.Workers, _ = strconv.Atoi(os.Getenv("WORKER_POOL_SIZE"))
	if config.WorkerPool.Workers == 0 {
		config.WorkerPool.Workers = 10
	}
	config.WorkerPool.QueueSize, _ = strconv.Atoi(os.Getenv("WORKER_POOL_QUEUE"))
	if config.WorkerPool.QueueSize == 0 {
		config.WorkerPool.QueueSize = 150
	}
	config.WorkerPool.TaskTimeout, _ = strconv.Atoi(os.Getenv("WORKER_TASK_TIMEOUT"))
	if config.WorkerPool.TaskTimeout == 0 {
		config.WorkerPool.TaskTimeout = 120
	}

	// Rate limit
	if rpsStr := os.Getenv("RATE_LIMIT_PER_SECOND"); rpsStr != "" {
		config.RateLimit.PerSecond, _ = strconv.ParseFloat(rpsStr, 64)
	}
	if config.RateLimit.PerSecond == 0 {
		config.RateLimit.PerSecond = 100
	}
	config.RateLimit.Burst, _ = strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = 200
	}

	// Images
	config.Images.ResizeConfigFile = os.Getenv("RESIZE_CONFIG_FILE")
	if config.Images.ResizeConfigFile == "" {
		config.Images.ResizeConfigFile = "resize_config.json"
	}

	// OpenTelemetry
	config.Telemetry.OTLPEndpoint = os.Getenv("OTLP_ENDPOINT")
	config.Telemetry.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Telemetry.ServiceName == "" {
		config.Telemetry.ServiceName = "content-server"
	}

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")

	config.Server.Port = os.Getenv("SERVER_PORT")
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	return &config
}
