package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aakash/content-server/apperror"
	"github.com/aakash/content-server/config"
	"github.com/aakash/content-server/entity"
	"github.com/aakash/content-server/guard"
	"github.com/aakash/content-server/infra/produce"
	"github.com/aakash/content-server/repository"
	"github.com/aakash/content-server/worker"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	upErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upErr != nil {
		return f.upErr
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) Download(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, &apperror.ObjectStoreError{Op: "get", Key: key}
	}
	return data, nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) AccessURI(key string) string {
	return "https://cdn.local/content/" + key
}

func (f *fakeStore) PresignedGet(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return "", &apperror.ObjectStoreError{Op: "presign", Key: key}
	}
	return "https://cdn.local/content/" + key + "?signed=1", nil
}

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

var errCacheMiss = errors.New("key not found in cache")

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	data, ok := f.entries[key]
	f.mu.Unlock()
	if !ok {
		return errCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
		f.deletes = append(f.deletes, key)
	}
	return nil
}

type fakePublisher struct {
	mu      sync.Mutex
	created []produce.PostCreatedMessage
	linked  []produce.ImageLinkedMessage
}

func (f *fakePublisher) PublishPostCreated(ctx context.Context, msg produce.PostCreatedMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, msg)
	return nil
}

func (f *fakePublisher) PublishImageLinked(ctx context.Context, msg produce.ImageLinkedMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linked = append(f.linked, msg)
	return nil
}

func (f *fakePublisher) linkedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.linked)
}

type nopLogger struct{}

func (nopLogger) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) WarningWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
}
func (nopLogger) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
}

type testEnv struct {
	svc   *Service
	repo  *repository.Repository
	store *fakeStore
	cache *fakeCache
	pub   *fakePublisher
	clock fixedClock
}

func setupTestService(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entity.Post{}, &entity.Comment{}, &entity.Image{}))

	pool := worker.NewPool(4, 32, 5*time.Second)
	t.Cleanup(pool.Shutdown)

	env := &testEnv{
		repo:  repository.InitRepository(db),
		store: newFakeStore(),
		cache: newFakeCache(),
		pub:   &fakePublisher{},
		clock: fixedClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	env.svc = NewService(Deps{
		Repo:      env.repo,
		Store:     env.store,
		Cache:     env.cache,
		Publisher: env.pub,
		Logger:    nopLogger{},
		Pool:      pool,
		Guard:     guard.New(1000, 1000),
		Clock:     env.clock,
		Profiles: config.ResizeConfig{
			entity.ActivityPost:    {Width: 320, Height: 320, Format: "jpg", Quality: 80},
			entity.ActivityComment: {Width: 120, Height: 120, Format: "jpg", Quality: 70},
		},
		Bucket: "content",
	})
	return env
}

func pngPayload(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
