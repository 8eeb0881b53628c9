//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go

// Package image is the storage gateway for uploaded images
package image

import (
	"context"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/voidarchive/archive/core"
)

var tracer = otel.Tracer("image")

// Repository is the interface for the image bucket
type Repository interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	d *diskv.Diskv
}

// NewRepository opens the image bucket below basePath
func NewRepository(basePath string) Repository {
	return &repository{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      16 << 20,
	})}
}

// bucket keys look like "<bucket>/<folder>/<file>"
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}

// unsafeKey reports keys that could resolve outside the bucket
func unsafeKey(key string) bool {
	return strings.Contains(key, "..") || strings.ContainsAny(key, "\\\x00")
}

func bucketKey(key string) string {
	return core.BucketName + "/" + strings.TrimPrefix(key, "/")
}

func (r *repository) Put(ctx context.Context, key string, data []byte) error {
	_, span := tracer.Start(ctx, "Image.Repository.Put")
	defer span.End()

	if unsafeKey(key) {
		return core.NewErrorInvalidInput("invalid object key")
	}

	err := r.d.Write(bucketKey(key), data)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to write object")
	}
	return nil
}

func (r *repository) Get(ctx context.Context, key string) ([]byte, error) {
	_, span := tracer.Start(ctx, "Image.Repository.Get")
	defer span.End()

	if unsafeKey(key) || !r.d.Has(bucketKey(key)) {
		return nil, core.NewErrorNotFound()
	}

	data, err := r.d.Read(bucketKey(key))
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to read object")
	}
	return data, nil
}

func (r *repository) Remove(ctx context.Context, key string) error {
	_, span := tracer.Start(ctx, "Image.Repository.Remove")
	defer span.End()

	if unsafeKey(key) || !r.d.Has(bucketKey(key)) {
		return core.NewErrorNotFound()
	}

	err := r.d.Erase(bucketKey(key))
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to erase object")
	}
	return nil
}

// Count walks the bucket and returns the number of stored objects
func (r *repository) Count(ctx context.Context) (int64, error) {
	_, span := tracer.Start(ctx, "Image.Repository.Count")
	defer span.End()

	cancel := make(chan struct{})
	defer close(cancel)

	var count int64
	for range r.d.KeysPrefix(core.BucketName+"/", cancel) {
		count++
	}
	return count, nil
}
