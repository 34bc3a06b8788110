package infra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aakash/content-server/apperror"
	"github.com/aakash/content-server/config"
)

// objectAPI is the whole-object surface of the store. *minioTransport adapts
// *minio.Client to it so tests can substitute an in-memory transport.
type objectAPI interface {
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
}

// multipartAPI is the part-level surface. *minio.Core satisfies it directly.
type multipartAPI interface {
	NewMultipartUpload(ctx context.Context, bucket, key string, opts minio.PutObjectOptions) (string, error)
	PutObjectPart(ctx context.Context, bucket, key, uploadID string, partID int, reader io.Reader, size int64, opts minio.PutObjectPartOptions) (minio.ObjectPart, error)
	CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []minio.CompletePart, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error
}

type minioTransport struct {
	client *minio.Client
}

func (t *minioTransport) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return t.client.PutObject(ctx, bucket, key, reader, size, opts)
}

func (t *minioTransport) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return t.client.GetObject(ctx, bucket, key, opts)
}

func (t *minioTransport) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	return t.client.RemoveObject(ctx, bucket, key, opts)
}

func (t *minioTransport) PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration, reqParams url.Values) (*url.URL, error) {
	return t.client.PresignedGetObject(ctx, bucket, key, expiry, reqParams)
}

func (t *minioTransport) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return t.client.BucketExists(ctx, bucket)
}

func (t *minioTransport) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return t.client.MakeBucket(ctx, bucket, opts)
}

// ObjectStoreClient stores and serves post images. Payloads below PartSize go
// up in one request; anything at or above it goes through a multipart upload
// in PartSize chunks.
type ObjectStoreClient struct {
	objects      objectAPI
	multipart    multipartAPI
	Bucket       string
	PublicURL    string
	PartSize     int64
	PresignHours int
}

func InitObjectStoreClient(cfg *config.EnvConfig) *ObjectStoreClient {
	if cfg.Minio.Endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	}

	client, err := minio.New(cfg.Minio.Endpoint, opts)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	core, err := minio.NewCore(cfg.Minio.Endpoint, opts)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO core client: %v", err))
	}

	log.Println("Connected to MinIO:", cfg.Minio.Endpoint)

	return &ObjectStoreClient{
		objects:      &minioTransport{client: client},
		multipart:    core,
		Bucket:       cfg.Minio.Bucket,
		PublicURL:    cfg.Minio.PublicURL,
		PartSize:     cfg.Minio.PartSize,
		PresignHours: cfg.Minio.PresignHours,
	}
}

func (o *ObjectStoreClient) EnsureBucket(ctx context.Context) error {
	exists, err := o.objects.BucketExists(ctx, o.Bucket)
	if err != nil {
		return &apperror.ObjectStoreError{Op: "bucket-exists", Key: o.Bucket, Err: err}
	}
	if exists {
		return nil
	}
	if err := o.objects.MakeBucket(ctx, o.Bucket, minio.MakeBucketOptions{}); err != nil {
		return &apperror.ObjectStoreError{Op: "make-bucket", Key: o.Bucket, Err: err}
	}
	return nil
}

// Upload writes data under key. The multipart path numbers parts from 1,
// finalizes with the part list in ascending order, and aborts the upload on
// any failure so the store is not left holding orphaned parts.
func (o *ObjectStoreClient) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	size := int64(len(data))
	putOpts := minio.PutObjectOptions{ContentType: contentType}

	if size < o.PartSize {
		_, err := o.objects.PutObject(ctx, o.Bucket, key, bytes.NewReader(data), size, putOpts)
		if err != nil {
			return &apperror.ObjectStoreError{Op: "put", Key: key, Err: err}
		}
		return nil
	}

	uploadID, err := o.multipart.NewMultipartUpload(ctx, o.Bucket, key, putOpts)
	if err != nil {
		return &apperror.ObjectStoreError{Op: "multipart-create", Key: key, Err: err}
	}

	var parts []minio.CompletePart
	partID := 1
	for offset := int64(0); offset < size; offset += o.PartSize {
		end := offset + o.PartSize
		if end > size {
			end = size
		}
		chunk := data[offset:end]

		part, err := o.multipart.PutObjectPart(ctx, o.Bucket, key, uploadID, partID,
			bytes.NewReader(chunk), int64(len(chunk)), minio.PutObjectPartOptions{})
		if err != nil {
			o.abort(ctx, key, uploadID)
			return &apperror.ObjectStoreError{Op: "multipart-part", Key: key, Err: err}
		}

		parts = append(parts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       part.ETag,
		})
		partID++
	}

	if _, err := o.multipart.CompleteMultipartUpload(ctx, o.Bucket, key, uploadID, parts, putOpts); err != nil {
		o.abort(ctx, key, uploadID)
		return &apperror.ObjectStoreError{Op: "multipart-complete", Key: key, Err: err}
	}

	return nil
}

func (o *ObjectStoreClient) abort(ctx context.Context, key, uploadID string) {
	if err := o.multipart.AbortMultipartUpload(ctx, o.Bucket, key, uploadID); err != nil {
		log.Printf("Failed to abort multipart upload %s for %s: %v", uploadID, key, err)
	}
}

// Download reads the whole object back, draining it in PartSize chunks.
func (o *ObjectStoreClient) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := o.objects.GetObject(ctx, o.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &apperror.ObjectStoreError{Op: "get", Key: key, Err: err}
	}
	defer obj.Close()

	var buf bytes.Buffer
	chunk := make([]byte, o.PartSize)
	for {
		n, err := obj.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &apperror.ObjectStoreError{Op: "read", Key: key, Err: err}
		}
	}
	return buf.Bytes(), nil
}

func (o *ObjectStoreClient) Remove(ctx context.Context, key string) error {
	if err := o.objects.RemoveObject(ctx, o.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return &apperror.ObjectStoreError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// AccessURI returns the public address of a stored object.
func (o *ObjectStoreClient) AccessURI(key string) string {
	return fmt.Sprintf("%s/%s/%s", o.PublicURL, o.Bucket, key)
}

// PresignedGet returns a time-limited direct link to a stored object.
func (o *ObjectStoreClient) PresignedGet(ctx context.Context, key string) (string, error) {
	expiry := time.Duration(o.PresignHours) * time.Hour
	u, err := o.objects.PresignedGetObject(ctx, o.Bucket, key, expiry, nil)
	if err != nil {
		return "", &apperror.ObjectStoreError{Op: "presign", Key: key, Err: err}
	}
	return u.String(), nil
}
