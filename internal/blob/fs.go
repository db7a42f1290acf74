package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Filesystem stores artifacts as files under a root directory, with a
// sidecar .meta.json per artifact carrying content type and metadata.
type Filesystem struct {
	root string
}

// NewFilesystem creates (if needed) and opens the root directory.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "./blobdata"
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Filesystem{root: root}, nil
}

// Driver returns DriverFilesystem.
func (s *Filesystem) Driver() Driver { return DriverFilesystem }

type fsMeta struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (s *Filesystem) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Put stores or replaces an artifact.
func (s *Filesystem) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	path, err := s.path(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return Info{}, fmt.Errorf("create dirs: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- path is validated against the store root
	if err != nil {
		return Info{}, err
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Info{}, err
	}
	meta := fsMeta{ContentType: opts.ContentType, Metadata: opts.Metadata}
	mb, err := json.Marshal(meta)
	if err != nil {
		return Info{}, err
	}
	if err := os.WriteFile(path+".meta.json", mb, 0o600); err != nil {
		return Info{}, err
	}
	return Info{
		Key:          key,
		Size:         size,
		ContentType:  opts.ContentType,
		Metadata:     cloneMetadata(opts.Metadata),
		LastModified: time.Now().UTC(),
	}, nil
}

// Get returns artifact metadata and a reader over its content.
func (s *Filesystem) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	info, err := s.Head(ctx, key)
	if err != nil {
		return Info{}, nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return Info{}, nil, err
	}
	f, err := os.Open(path) // #nosec G304 -- path is validated against the store root
	if err != nil {
		return Info{}, nil, err
	}
	return info, f, nil
}

// Head returns artifact metadata only.
func (s *Filesystem) Head(_ context.Context, key string) (Info, error) {
	path, err := s.path(key)
	if err != nil {
		return Info{}, err
	}
	st, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return Info{}, err
	}
	info := Info{Key: key, Size: st.Size(), LastModified: st.ModTime().UTC()}
	if mb, err := os.ReadFile(path + ".meta.json"); err == nil { // #nosec G304 -- sidecar next to validated path
		var meta fsMeta
		if json.Unmarshal(mb, &meta) == nil {
			info.ContentType = meta.ContentType
			info.Metadata = meta.Metadata
		}
	}
	return info, nil
}

// Delete removes the artifact and its sidecar, reporting whether it
// existed.
func (s *Filesystem) Delete(_ context.Context, key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_ = os.Remove(path + ".meta.json")
	return true, nil
}

// List returns all artifacts under prefix in key order.
func (s *Filesystem) List(ctx context.Context, prefix string) ([]Info, error) {
	var out []Info
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".meta.json") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := s.Head(ctx, key)
		if err != nil {
			return err
		}
		out = append(out, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// PresignURL is unsupported for the filesystem driver.
func (s *Filesystem) PresignURL(_ context.Context, _ string, _ SignedURLOptions) (string, error) {
	return "", ErrUnsupported
}
