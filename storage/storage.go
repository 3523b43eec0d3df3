// Package storage uploads product images to an external object store.
// Files are validated client-side (type sniff and size cap) before any
// network work is attempted.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore is a bucket of publicly readable objects. Put returns the
// public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, objectName string) error
	// ObjectName maps a public URL previously returned by Put back to its
	// object name, for cleanup of replaced images.
	ObjectName(publicURL string) (string, error)
}

// NewFromEnv picks the configured backend. STORAGE_BACKEND is "gcs"
// (default) or "r2".
func NewFromEnv(ctx context.Context) (ObjectStore, error) {
	switch backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_BACKEND"))); backend {
	case "", "gcs":
		return NewGCSStore(ctx)
	case "r2":
		return NewR2Store(ctx)
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}
}

// ImageValidator rejects non-image or oversized uploads before any transfer
// is attempted. The MIME type is sniffed from the first 512 bytes, not
// trusted from the client header.
type ImageValidator struct {
	allowedExt map[string]bool
	maxSize    int64
}

func NewImageValidator() *ImageValidator {
	allowedExt := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
	}
	if raw := os.Getenv("ALLOWED_IMAGE_EXTENSIONS"); raw != "" {
		allowedExt = make(map[string]bool)
		for _, ext := range strings.Split(raw, ",") {
			if ext = strings.TrimSpace(strings.ToLower(ext)); ext != "" {
				allowedExt[ext] = true
			}
		}
	}

	sizeMB := 5
	if v := os.Getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			sizeMB = parsed
		}
	}

	return &ImageValidator{
		allowedExt: allowedExt,
		maxSize:    int64(sizeMB) << 20,
	}
}

// Validate returns the detected content type, or a user-facing error.
func (v *ImageValidator) Validate(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > v.maxSize {
		return "", fmt.Errorf("image must be less than %d MiB", v.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !v.allowedExt[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err = file.Read(buffer); err != nil {
		return "", fmt.Errorf("failed to read file header")
	}

	detected := strings.ToLower(http.DetectContentType(buffer))
	if !strings.HasPrefix(detected, "image/") {
		return "", fmt.Errorf("file is not an image")
	}

	return detected, nil
}

// UploadProductImage validates the file and stores it under a unique
// products/ object name, returning the public URL and object name.
func UploadProductImage(
	ctx context.Context,
	store ObjectStore,
	validator *ImageValidator,
	fileHeader *multipart.FileHeader,
) (string, string, error) {

	contentType, err := validator.Validate(fileHeader)
	if err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := fmt.Sprintf("products/%d-%s%s", time.Now().UTC().Unix(), uuid.New().String(), ext)

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	url, err := store.Put(ctx, objectName, contentType, file)
	if err != nil {
		return "", "", fmt.Errorf("upload %s: %w", fileHeader.Filename, err)
	}
	return url, objectName, nil
}

// DeleteByURL best-effort removes a previously uploaded object by its
// public URL. Unrecognized URLs are ignored.
func DeleteByURL(ctx context.Context, store ObjectStore, publicURL string) error {
	objectName, err := store.ObjectName(publicURL)
	if err != nil {
		return nil
	}
	return store.Delete(ctx, objectName)
}
