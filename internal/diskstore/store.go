// Package diskstore implements the persistence contracts on a plain-file
// key/value store. It is the local-storage counterpart to the SQLite
// backend; the two are interchangeable behind the repository interfaces.
package diskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
	"github.com/vibetimer/vibetimer/internal/repository"
)

const (
	vibePrefix   = "vibe"
	ledgerPrefix = "day"
)

// Store is a diskv-backed store holding both vibe definitions and ledger
// entries as JSON files. Keys are `vibe/<id>` and `day/<date>/<vibeID>`, so
// each calendar day gets its own directory on disk.
type Store struct {
	d *diskv.Diskv
}

// Open creates a Store rooted at basePath.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, errors.New("diskstore: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("diskstore: ensure base path: %w", err)
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}, nil
}

// Vibes returns the vibe definition repository view.
func (s *Store) Vibes() *VibeStore { return &VibeStore{d: s.d} }

// Ledger returns the ledger entry repository view.
func (s *Store) Ledger() *LedgerStore { return &LedgerStore{d: s.d} }

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(pathKey.Path, pathKey.FileName), "/")
}

func notFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// VibeStore implements repository.VibeRepository.
type VibeStore struct {
	d *diskv.Diskv
}

func vibeKey(id string) string { return vibePrefix + "/" + id }

func (s *VibeStore) Create(ctx context.Context, v *vibe.Vibe) error {
	key := vibeKey(v.ID)
	if s.d.Has(key) {
		return repository.ErrDuplicate
	}
	return writeJSON(s.d, key, v)
}

func (s *VibeStore) Get(ctx context.Context, id string) (*vibe.Vibe, error) {
	var v vibe.Vibe
	if err := readJSON(s.d, vibeKey(id), &v); err != nil {
		if notFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("diskstore: read vibe: %w", err)
	}
	return &v, nil
}

func (s *VibeStore) List(ctx context.Context) ([]vibe.Vibe, error) {
	var vibes []vibe.Vibe
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, vibePrefix+"/") {
			continue
		}
		var v vibe.Vibe
		if err := readJSON(s.d, key, &v); err != nil {
			return nil, fmt.Errorf("diskstore: read vibe %s: %w", key, err)
		}
		vibes = append(vibes, v)
	}
	sort.SliceStable(vibes, func(i, j int) bool {
		if vibes[i].CreatedAt.Equal(vibes[j].CreatedAt) {
			return vibes[i].ID < vibes[j].ID
		}
		return vibes[i].CreatedAt.Before(vibes[j].CreatedAt)
	})
	return vibes, nil
}

func (s *VibeStore) Update(ctx context.Context, v *vibe.Vibe) error {
	key := vibeKey(v.ID)
	if !s.d.Has(key) {
		return repository.ErrNotFound
	}
	return writeJSON(s.d, key, v)
}

func (s *VibeStore) Delete(ctx context.Context, id string) error {
	key := vibeKey(id)
	if !s.d.Has(key) {
		return repository.ErrNotFound
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("diskstore: erase vibe: %w", err)
	}
	return nil
}

// LedgerStore implements repository.LedgerRepository.
type LedgerStore struct {
	d *diskv.Diskv
}

func entryKey(date, vibeID string) string {
	return ledgerPrefix + "/" + date + "/" + vibeID
}

func (s *LedgerStore) Create(ctx context.Context, e *ledger.Entry) error {
	key := entryKey(e.Date, e.VibeID)
	if s.d.Has(key) {
		return repository.ErrDuplicate
	}
	return writeJSON(s.d, key, e)
}

func (s *LedgerStore) Get(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	var e ledger.Entry
	if err := readJSON(s.d, entryKey(date, vibeID), &e); err != nil {
		if notFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("diskstore: read entry: %w", err)
	}
	return &e, nil
}

func (s *LedgerStore) GetByDate(ctx context.Context, date string) ([]ledger.Entry, error) {
	prefix := ledgerPrefix + "/" + date + "/"
	var entries []ledger.Entry
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		var e ledger.Entry
		if err := readJSON(s.d, key, &e); err != nil {
			return nil, fmt.Errorf("diskstore: read entry %s: %w", key, err)
		}
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries, nil
}

func (s *LedgerStore) Update(ctx context.Context, e *ledger.Entry) error {
	key := entryKey(e.Date, e.VibeID)
	if !s.d.Has(key) {
		return repository.ErrNotFound
	}
	return writeJSON(s.d, key, e)
}

func (s *LedgerStore) Delete(ctx context.Context, date, vibeID string) error {
	key := entryKey(date, vibeID)
	if !s.d.Has(key) {
		return repository.ErrNotFound
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("diskstore: erase entry: %w", err)
	}
	return nil
}

func (s *LedgerStore) FindRunning(ctx context.Context) (*ledger.Entry, error) {
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, ledgerPrefix+"/") {
			continue
		}
		var e ledger.Entry
		if err := readJSON(s.d, key, &e); err != nil {
			return nil, fmt.Errorf("diskstore: read entry %s: %w", key, err)
		}
		if e.IsRunning {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func sortEntries(entries []ledger.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].VibeID < entries[j].VibeID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

func readJSON(d *diskv.Diskv, key string, target any) error {
	data, err := d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func writeJSON(d *diskv.Diskv, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("diskstore: marshal %s: %w", key, err)
	}
	if err := d.Write(key, data); err != nil {
		return fmt.Errorf("diskstore: write %s: %w", key, err)
	}
	return nil
}
