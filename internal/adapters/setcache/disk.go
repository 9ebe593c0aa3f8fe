package setcache

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/natefinch/atomic"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/zerr"
)

// Disk stores every chunk as a JSON file in a directory per store.
type Disk struct {
	root string
	ttl  time.Duration
	now  func() time.Time
}

// NewDisk creates a disk cache rooted at root.
func NewDisk(root string, ttl time.Duration) (*Disk, error) {
	cleanRoot := filepath.Clean(root)
	if err := os.MkdirAll(cleanRoot, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheConnectFailed.Error()), "path", cleanRoot)
	}
	return &Disk{root: cleanRoot, ttl: ttl, now: time.Now}, nil
}

// Get reads every unexpired chunk of key. Expired files are removed.
// Unreadable files are skipped; the first such error is returned with the chunks that could be read.
func (d *Disk) Get(ctx context.Context, key domain.SetKey) ([]*domain.IconSetData, error) {
	dir := d.storeDir(key)
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", dir)
	}

	now := d.now()
	var (
		chunks   []*domain.IconSetData
		firstErr error
	)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return chunks, err
		}
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, f.Name())

		//nolint:gosec // Path is constructed from the cache directory and a hashed filename
		b, err := os.ReadFile(path)
		if err != nil {
			firstErr = cmp.Or(firstErr, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path))
			continue
		}
		e, err := decodeEntry(b)
		if err != nil {
			firstErr = cmp.Or(firstErr, zerr.With(err, "path", path))
			continue
		}
		if e.expired(now, d.ttl) {
			_ = os.Remove(path)
			continue
		}
		chunks = append(chunks, e.Data)
	}
	return chunks, firstErr
}

// Put writes data as a new chunk of key. A chunk with identical names replaces the previous one.
func (d *Disk) Put(_ context.Context, key domain.SetKey, data *domain.IconSetData) error {
	b, err := encodeEntry(d.now(), data)
	if err != nil {
		return err
	}

	dir := d.storeDir(key)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", dir)
	}

	path := filepath.Join(dir, chunkName(data))
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(path, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	return nil
}

// Close does nothing.
func (d *Disk) Close() error {
	return nil
}

func (d *Disk) storeDir(key domain.SetKey) string {
	return filepath.Join(d.root, hashString(key.Provider+":"+key.Prefix))
}

func chunkName(data *domain.IconSetData) string {
	return hashString(strings.Join(data.Names(), ",")) + ".json"
}

func hashString(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
