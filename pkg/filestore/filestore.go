package filestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/igolaizola/musicprompt/pkg/filestore/local"
	"github.com/igolaizola/musicprompt/pkg/filestore/s3"
)

type fs interface {
	Upload(ctx context.Context, path, name string) error
	Download(ctx context.Context, path, name string) error
	URL(ctx context.Context, name string) (string, error)
}

// Store keeps exported files in a local folder or an s3 bucket.
type Store struct {
	fs fs
}

// Upload copies the file at path to the store under name.
func (s *Store) Upload(ctx context.Context, path, name string) error {
	return s.fs.Upload(ctx, path, name)
}

// Download copies the file stored under name to path.
func (s *Store) Download(ctx context.Context, path, name string) error {
	return s.fs.Download(ctx, path, name)
}

// URL returns a link to the stored file.
func (s *Store) URL(ctx context.Context, name string) (string, error) {
	return s.fs.URL(ctx, name)
}

// New returns a store of the given type. The connection string is a folder
// for local and key:secret@bucket.region for s3.
func New(ctx context.Context, typ, conn string, debug bool) (*Store, error) {
	var fs fs
	switch typ {
	case "s3":
		split := strings.Split(conn, "@")
		if len(split) != 2 {
			return nil, fmt.Errorf("filestore: invalid s3 connection string %q", conn)
		}
		auth := strings.Split(split[0], ":")
		if len(auth) != 2 {
			return nil, fmt.Errorf("filestore: invalid s3 auth string %q", conn)
		}
		key := auth[0]
		secret := auth[1]
		loc := strings.Split(split[1], ".")
		if len(loc) != 2 {
			return nil, fmt.Errorf("filestore: invalid s3 location string %q", conn)
		}
		bucket := loc[0]
		region := loc[1]
		candidate, err := s3.New(ctx, key, secret, region, bucket, debug)
		if err != nil {
			return nil, fmt.Errorf("filestore: %w", err)
		}
		fs = candidate
	case "local", "":
		if conn == "" {
			conn = "exports"
		}
		candidate, err := local.New(conn, debug)
		if err != nil {
			return nil, fmt.Errorf("filestore: %w", err)
		}
		fs = candidate
	default:
		return nil, fmt.Errorf("filestore: unknown file storage type %q", typ)
	}
	return &Store{fs: fs}, nil
}
