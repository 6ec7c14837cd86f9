package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const metaSuffix = ".meta"

// LocalStorage implements Storage on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local storage rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: abs}, nil
}

// BasePath returns the storage root.
func (s *LocalStorage) BasePath() string { return s.basePath }

// Put writes content through a temporary file so readers never observe a
// partially written object.
func (s *LocalStorage) Put(ctx context.Context, key string, content []byte, metadata *Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".put-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("rename into %s: %w", key, err)
	}

	if metadata != nil {
		metaBytes, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		if err := os.WriteFile(fullPath+metaSuffix, metaBytes, 0o644); err != nil {
			return fmt.Errorf("write metadata for %s: %w", key, err)
		}
	}
	return nil
}

// Get reads the content stored at key.
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return content, nil
}

// Stat returns object information for key.
func (s *LocalStorage) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("stat %s: %w", key, err)
	}

	checksum, err := fileChecksum(fullPath)
	if err != nil {
		return nil, fmt.Errorf("checksum %s: %w", key, err)
	}

	info := &ObjectInfo{
		Key:        key,
		Size:       stat.Size(),
		Checksum:   checksum,
		ModifiedAt: stat.ModTime(),
	}
	if metaBytes, err := os.ReadFile(fullPath + metaSuffix); err == nil {
		var metadata Metadata
		if json.Unmarshal(metaBytes, &metadata) == nil {
			info.Metadata = &metadata
		}
	}
	return info, nil
}

// Delete removes key and its metadata.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	_ = os.Remove(fullPath + metaSuffix)
	return nil
}

// List returns the keys under the storage root that start with prefix.
func (s *LocalStorage) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var keys []string
	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, metaSuffix) || strings.HasPrefix(d.Name(), ".put-") {
			return nil
		}
		key, err := s.pathToKey(path)
		if err != nil {
			return err
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// keyToPath maps a key to a path under the root, rejecting keys that would
// escape it.
func (s *LocalStorage) keyToPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(key, "/")))
	if key == "" || clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(s.basePath, clean), nil
}

func (s *LocalStorage) pathToKey(path string) (string, error) {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
