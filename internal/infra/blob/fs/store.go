// Package fs implements the SDS document blob store on the local filesystem.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"chemcore/internal/blob/core"
)

const sidecarSuffix = ".meta"

// Store keeps SDS documents as plain files under a root directory. Each key
// becomes a relative path; a JSON sidecar next to the data file carries the
// content type, user metadata, and digest. Concurrent writers to the same
// key are only protected by the create-once check in Put.
type Store struct {
	root string
}

// New opens a store rooted at path, creating the directory when absent. An
// empty path falls back to ./sdsdata in the working directory.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./sdsdata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// Driver returns the blob driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// sidecar is the on-disk JSON layout of a document's metadata file.
type sidecar struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	ETag        string            `json:"etag"`
	Size        int64             `json:"size"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// resolve validates key and maps it to the data and sidecar paths. Keys that
// could escape the root are rejected before touching the filesystem.
func (s *Store) resolve(key string) (dataPath, sidecarPath string, err error) {
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", "", fmt.Errorf("invalid absolute key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, "..") {
		return "", "", fmt.Errorf("invalid key traversal")
	}
	dataPath = filepath.Join(s.root, clean)
	return dataPath, dataPath + sidecarSuffix, nil
}

// Put stores a new document. The body streams through a temp file while the
// digest accumulates, then a rename moves it into place so readers never see
// a partial write. Existing keys are an error; documents are immutable once
// stored.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	dataPath, sidecarPath, err := s.resolve(key)
	if err != nil {
		return core.Info{}, err
	}
	if _, err := os.Stat(dataPath); err == nil {
		return core.Info{}, fmt.Errorf("blob %s already exists", key)
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return core.Info{}, err
	}

	sc, err := s.spool(dataPath, r)
	if err != nil {
		return core.Info{}, err
	}
	sc.ContentType = opts.ContentType
	sc.Metadata = cloneMetadata(opts.Metadata)

	raw, err := json.Marshal(sc)
	if err != nil {
		return core.Info{}, err
	}
	if err := os.WriteFile(sidecarPath, raw, 0o644); err != nil {
		return core.Info{}, err
	}
	return s.describe(key, sc), nil
}

// spool copies the body into dataPath via a temp file and returns a sidecar
// with the digest, size, and timestamps filled in.
func (s *Store) spool(dataPath string, r io.Reader) (sidecar, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".spool-*")
	if err != nil {
		return sidecar{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	digest := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, digest), r)
	if err != nil {
		_ = tmp.Close()
		return sidecar{}, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return sidecar{}, err
	}
	if err := tmp.Close(); err != nil {
		return sidecar{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return sidecar{}, err
	}
	now := time.Now().UTC()
	return sidecar{
		ETag:      hex.EncodeToString(digest.Sum(nil)),
		Size:      size,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Get opens the document and returns its metadata alongside the reader.
func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	dataPath, sidecarPath, err := s.resolve(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	file, err := os.Open(dataPath)
	if err != nil {
		return core.Info{}, nil, err
	}
	sc, err := loadSidecar(sidecarPath)
	if err != nil {
		_ = file.Close()
		return core.Info{}, nil, err
	}
	return s.describe(key, sc), file, nil
}

// Head returns metadata without opening the data file.
func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	_, sidecarPath, err := s.resolve(key)
	if err != nil {
		return core.Info{}, err
	}
	sc, err := loadSidecar(sidecarPath)
	if err != nil {
		return core.Info{}, err
	}
	return s.describe(key, sc), nil
}

// Delete removes the document together with its sidecar. A missing key
// reports (false, nil) rather than an error.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	dataPath, sidecarPath, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(dataPath); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := os.Remove(dataPath); err != nil {
		return false, err
	}
	_ = os.Remove(sidecarPath)
	return true, nil
}

// List walks the tree for sidecar files, keeps keys under prefix, and
// returns them sorted by key.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	var infos []core.Info
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, sidecarSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, strings.TrimSuffix(path, sidecarSuffix))
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		sc, err := loadSidecar(path)
		if err != nil {
			return err
		}
		infos = append(infos, s.describe(key, sc))
		return nil
	}
	if err := filepath.WalkDir(s.root, walk); err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// PresignURL hands out the stable local pseudo URL. Only GET makes sense for
// a filesystem store; other methods report core.ErrUnsupported.
func (s *Store) PresignURL(_ context.Context, key string, opts core.SignedURLOptions) (string, error) {
	if opts.Method != "" && strings.ToUpper(opts.Method) != "GET" {
		return "", core.ErrUnsupported
	}
	return s.localURL(key), nil
}

func (s *Store) describe(key string, sc sidecar) core.Info {
	return core.Info{
		Key:          key,
		Size:         sc.Size,
		ContentType:  sc.ContentType,
		ETag:         sc.ETag,
		Metadata:     cloneMetadata(sc.Metadata),
		LastModified: sc.UpdatedAt,
		URL:          s.localURL(key),
	}
}

func (s *Store) localURL(key string) string {
	return (&url.URL{Scheme: "http", Host: "local.blob", Path: "/" + key}).String()
}

func loadSidecar(path string) (sidecar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return sidecar{}, err
	}
	var sc sidecar
	if err := json.Unmarshal(raw, &sc); err != nil {
		return sidecar{}, err
	}
	return sc, nil
}

func cloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
