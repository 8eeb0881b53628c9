package image

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/voidarchive/archive/core"
)

type service struct {
	repo      Repository
	publicURL string
}

// NewService creates a new image service that hands out URLs below publicURL
func NewService(repo Repository, publicURL string) core.ImageService {
	return &service{repo, strings.TrimSuffix(publicURL, "/")}
}

// PublicPrefix is the path under which bucket objects are served
const PublicPrefix = "/storage/v1/object/public/" + core.BucketName + "/"

// extensions maps accepted image subtypes to the extension stored on disk
var extensions = map[string]string{
	"jpeg":    "jpg",
	"jpg":     "jpg",
	"png":     "png",
	"gif":     "gif",
	"webp":    "webp",
	"avif":    "avif",
	"bmp":     "bmp",
	"svg+xml": "svg",
	"svg":     "svg",
	"x-icon":  "ico",
	"ico":     "ico",
	"heic":    "heic",
}

// extensionFor picks the stored extension from the filename, then the content type
func extensionFor(filename, contentType string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if known, ok := extensions[ext]; ok {
		return known, true
	}
	subtype := strings.ToLower(strings.TrimPrefix(contentType, "image/"))
	if i := strings.IndexByte(subtype, ';'); i >= 0 {
		subtype = strings.TrimSpace(subtype[:i])
	}
	known, ok := extensions[subtype]
	return known, ok
}

// safeFolder keeps folder only if every segment is a plain name
func safeFolder(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" || strings.ContainsAny(folder, "\\\x00") {
		return "misc"
	}
	for _, segment := range strings.Split(folder, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "misc"
		}
	}
	return folder
}

// Upload validates and stores an image, returning its public URL
func (s *service) Upload(ctx context.Context, data []byte, filename, contentType, folder string) (string, error) {
	ctx, span := tracer.Start(ctx, "Image.Service.Upload")
	defer span.End()

	if !strings.HasPrefix(contentType, "image/") {
		return "", core.NewErrorInvalidImage()
	}
	if len(data) > core.MaxImageSize {
		return "", core.NewErrorImageTooLarge()
	}

	ext, ok := extensionFor(filename, contentType)
	if !ok {
		return "", core.NewErrorInvalidImage()
	}
	folder = safeFolder(folder)

	key := fmt.Sprintf("%s/%d_%s.%s", folder, time.Now().UnixMilli(), xid.New().String(), ext)

	err := s.repo.Put(ctx, key, data)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	return s.publicURL + PublicPrefix + key, nil
}

// Delete removes the object a public URL points at
func (s *service) Delete(ctx context.Context, url string) error {
	ctx, span := tracer.Start(ctx, "Image.Service.Delete")
	defer span.End()

	parts := strings.SplitN(url, core.BucketName+"/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return core.NewErrorInvalidInput("not an archive image url")
	}

	err := s.repo.Remove(ctx, parts[1])
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Open returns the stored bytes of a key
func (s *service) Open(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Image.Service.Open")
	defer span.End()

	return s.repo.Get(ctx, key)
}

// Count returns the number of stored images
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Image.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}
