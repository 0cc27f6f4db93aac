package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/academic-hub-api/internal/config"
	"github.com/yukikurage/academic-hub-api/internal/logger"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("blob not found")

// Object is an opened blob. Size is -1 when unknown.
type Object struct {
	Body io.ReadCloser
	Size int64
}

// BlobStore stores uploaded files under slash-separated keys.
type BlobStore interface {
	// Write stores r under key, replacing any existing object
	Write(ctx context.Context, key string, r io.Reader) error

	// Open returns the object under key or ErrNotFound
	Open(ctx context.Context, key string) (*Object, error)

	// Exists reports whether an object is stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the object under key; a missing object yields ErrNotFound
	Delete(ctx context.Context, key string) error
}

// New creates the blob store selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (BlobStore, error) {
	switch cfg.StorageDriver {
	case "local":
		log.Info("initializing local storage", "dir", cfg.UploadDir)
		return NewLocalStore(cfg.UploadDir)
	case "s3":
		log.Info("initializing S3 storage",
			"bucket", cfg.S3Bucket,
			"region", cfg.S3Region,
			"endpoint", cfg.S3Endpoint,
		)
		return NewS3Store(ctx, S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeName reduces a client supplied file name to a safe base name.
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	if len(name) > 100 {
		ext := path.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = name[:100-len(ext)] + ext
	}
	return name
}

// ObjectKey builds a collision free key "<folder>/<uuid>-<name>".
func ObjectKey(folder, originalName string) string {
	return folder + "/" + uuid.NewString() + "-" + SanitizeName(originalName)
}

func validKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("invalid storage key %q", key)
		}
	}
	return nil
}
