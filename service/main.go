package service

import (
	"context"
	"time"

	"github.com/aakash/content-server/apperror"
	"github.com/aakash/content-server/config"
	"github.com/aakash/content-server/guard"
	"github.com/aakash/content-server/infra/produce"
	"github.com/aakash/content-server/repository"
	"github.com/aakash/content-server/utils"
	"github.com/aakash/content-server/worker"
)

// ObjectStore is the blob storage surface the content pipeline needs.
// infra.ObjectStoreClient satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	AccessURI(key string) string
	PresignedGet(ctx context.Context, key string) (string, error)
}

// Cache is the read-through cache surface. infra.RedisClient satisfies it.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Publisher emits content lifecycle events. produce.ContentService satisfies it.
type Publisher interface {
	PublishPostCreated(ctx context.Context, msg produce.PostCreatedMessage) error
	PublishImageLinked(ctx context.Context, msg produce.ImageLinkedMessage) error
}

// Logger is the structured logging surface. infra.LoggerClient satisfies it.
type Logger interface {
	InfoWithContextf(ctx context.Context, format string, args ...interface{})
	WarningWithContextf(ctx context.Context, err error, format string, args ...interface{})
	ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{})
}

type Service struct {
	Repo      *repository.Repository
	Store     ObjectStore
	Cache     Cache
	Publisher Publisher
	Logger    Logger
	Pool      *worker.Pool
	Guard     *guard.Guard
	Clock     utils.Clock
	Profiles  config.ResizeConfig
	Bucket    string
}

type Deps struct {
	Repo      *repository.Repository
	Store     ObjectStore
	Cache     Cache
	Publisher Publisher
	Logger    Logger
	Pool      *worker.Pool
	Guard     *guard.Guard
	Clock     utils.Clock
	Profiles  config.ResizeConfig
	Bucket    string
}

func NewService(deps Deps) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Service{
		Repo:      deps.Repo,
		Store:     deps.Store,
		Cache:     deps.Cache,
		Publisher: deps.Publisher,
		Logger:    deps.Logger,
		Pool:      deps.Pool,
		Guard:     deps.Guard,
		Clock:     clock,
		Profiles:  deps.Profiles,
		Bucket:    deps.Bucket,
	}
}

// storageErr translates a gorm error into the shared taxonomy.
func storageErr(op, entityName, id string, err error) error {
	if repository.IsNotFound(err) {
		return &apperror.NotFoundError{Entity: entityName, ID: id}
	}
	return &apperror.StorageError{Op: op, Err: err}
}
