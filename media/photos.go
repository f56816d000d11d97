// Package media validates and stores journalist portrait photos.
// Validation always runs before any upload attempt; a rejected file
// never reaches the bucket.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MaxPhotoSize = 2 << 20 // 2 MiB

var (
	ErrTooLarge  = errors.New("photo must not exceed 2 MiB")
	ErrBadFormat = errors.New("photo must be a JPEG or PNG image")
	ErrNotFound  = errors.New("photo not found")
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ValidatePhoto checks size and content type before any upload. The
// type is sniffed from the leading bytes, not taken from the client.
func ValidatePhoto(size int64, head []byte) error {
	if size > MaxPhotoSize {
		return ErrTooLarge
	}
	switch http.DetectContentType(head) {
	case "image/jpeg", "image/png":
		return nil
	}
	return ErrBadFormat
}

// Store saves photo bytes and hands back a durable public URL. The
// record facade depends only on this surface, so the GridFS bucket
// could be swapped for a cloud blob store without touching handlers.
type Store interface {
	SavePhoto(ctx context.Context, filename string, data []byte) (string, error)
	OpenPhoto(ctx context.Context, name string) (io.ReadCloser, error)
}

// GridFSStore keeps photos in a GridFS bucket next to the record
// collections, served back at /media/files/<name>.
type GridFSStore struct {
	bucket  *gridfs.Bucket
	baseURL string
}

func NewGridFSStore(db *mongo.Database, baseURL string) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("photos"))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket, baseURL: baseURL}, nil
}

// SavePhoto uploads under a timestamp-prefixed name so concurrent
// uploads of the same filename never collide.
func (s *GridFSStore) SavePhoto(ctx context.Context, filename string, data []byte) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(filename))

	if _, err := s.bucket.UploadFromStream(name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("photo upload: %w", err)
	}

	url := fmt.Sprintf("%s/media/files/%s", s.baseURL, name)
	log.Printf("[INFO] Uploaded photo %s (%d bytes)", name, len(data))
	return url, nil
}

func (s *GridFSStore) OpenPhoto(ctx context.Context, name string) (io.ReadCloser, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(name)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("photo open: %w", err)
	}
	return stream, nil
}

func sanitizeName(filename string) string {
	clean := unsafeNameChars.ReplaceAllString(filename, "-")
	if clean == "" || clean == "-" {
		clean = "photo"
	}
	return clean
}
