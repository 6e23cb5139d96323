// Package snapshot persists and reloads the analyzer's derived state: one
// entry per analyzed file plus the extractor versions and schema version
// that produced it. Serialization uses encoding/json uniformly for every
// artifact emitted; no alternative serialization library fits better.
// Locking uses github.com/gofrs/flock for the single-writer advisory lock
// this package requires.
package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"github.com/1homsi/loctree/internal/errs"
	"github.com/1homsi/loctree/internal/extractor"
	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/logging"
	"github.com/1homsi/loctree/internal/model"
)

// SchemaVersion is bumped whenever the on-disk shape changes incompatibly.
// A mismatch discards the whole snapshot and forces a full rebuild —
// never a partial read across schema versions.
const SchemaVersion = 1

const (
	fileName = "snapshot.json"
	lockName = "snapshot.json.lock"
	dirName  = ".loctree"
)

// Entry is one file's cached analysis plus the hash it was derived from.
type Entry struct {
	ContentHash      string             `json:"content_hash"`
	ExtractorVersion int                `json:"extractor_version"`
	Analysis         model.FileAnalysis `json:"analysis"`
}

// Snapshot is the full on-disk / in-memory persisted state.
type Snapshot struct {
	SchemaVersion    uint32         `json:"schema_version"`
	ExtractorVersions map[string]int `json:"extractor_versions"`
	Root             string         `json:"root"`
	Entries          []Entry        `json:"entries"`

	graph *graph.Graph // derived, not persisted
}

// Graph returns the derived graph, building it from Entries on first call.
func (s *Snapshot) Graph() *graph.Graph {
	if s.graph == nil {
		analyses := make([]model.FileAnalysis, len(s.Entries))
		for i, e := range s.Entries {
			analyses[i] = e.Analysis
		}
		s.graph = graph.Build(analyses)
	}
	return s.graph
}

// Store manages a snapshot's location on disk for one project root.
type Store struct {
	root string
}

// NewStore returns a Store rooted at the project directory.
func NewStore(root string) *Store { return &Store{root: root} }

func (s *Store) dir() string  { return filepath.Join(s.root, dirName) }
func (s *Store) path() string { return filepath.Join(s.dir(), fileName) }
func (s *Store) lockPath() string { return filepath.Join(s.dir(), lockName) }

// Load reads the snapshot from disk. A missing file or a schema-version
// mismatch both yield a fresh, empty snapshot rather than an error — the
// caller (the runner) treats that identically to "first run".
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return empty(s.root), nil
	}
	if err != nil {
		return nil, errs.Snapshot(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logging.Warnf("snapshot: corrupt %s, discarding: %v", s.path(), err)
		return empty(s.root), nil
	}
	if snap.SchemaVersion != SchemaVersion {
		logging.Infof("snapshot: schema version %d != %d, discarding", snap.SchemaVersion, SchemaVersion)
		return empty(s.root), nil
	}
	return &snap, nil
}

// Empty returns a fresh, zero-entry snapshot rooted at root, used as the
// baseline for a no-cache run or when no prior snapshot exists yet.
func Empty(root string) *Snapshot { return empty(root) }

func empty(root string) *Snapshot {
	return &Snapshot{
		SchemaVersion:     SchemaVersion,
		ExtractorVersions: map[string]int{},
		Root:              root,
		Entries:           []Entry{},
	}
}

// Save atomically writes the snapshot: write to a temp file, fsync, then
// os.Rename over the final path, so a concurrent reader always observes
// either the pre- or post-update content, never a partial write. The
// gofrs/flock advisory lock is held for the duration of the write.
func (s *Store) Save(snap *Snapshot) error {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return errs.IO(s.dir(), err)
	}

	lock := flock.New(s.lockPath())
	if err := lock.Lock(); err != nil {
		return errs.Snapshot(err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errs.Snapshot(err)
	}

	tmp := s.path() + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.IO(tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errs.IO(tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errs.IO(tmp, err)
	}
	if err := f.Close(); err != nil {
		return errs.IO(tmp, err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return errs.IO(s.path(), err)
	}
	return nil
}

// Refresh re-extracts only what changed since the prior snapshot: files
// whose content hash or extractor version no longer match are
// re-analyzed; files missing from paths are dropped; everything else is
// carried forward verbatim. This is a pure function of (file set,
// contents, extractor versions), and entries are returned sorted by
// FileID so repeated runs over unchanged input are byte-identical.
func Refresh(ctx context.Context, prior *Snapshot, root string, paths []string) (*Snapshot, []error, error) {
	byID := make(map[model.FileID]Entry, len(prior.Entries))
	for _, e := range prior.Entries {
		byID[e.Analysis.File.ID] = e
	}

	stale := make([]string, 0, len(paths))
	carried := make(map[model.FileID]Entry, len(paths))
	for _, p := range paths {
		id := model.FileID(filepath.ToSlash(p))
		prev, ok := byID[id]
		if !ok {
			stale = append(stale, p)
			continue
		}
		ext, hasExt := extractor.For(p)
		if hasExt && ext.Version() != prev.ExtractorVersion {
			stale = append(stale, p)
			continue
		}
		hash, err := hashFile(filepath.Join(root, p))
		if err != nil || hash != prev.ContentHash {
			stale = append(stale, p)
			continue
		}
		carried[id] = prev
	}

	results, err := extractor.RunAll(ctx, root, stale)
	if err != nil {
		return nil, nil, err
	}

	var diagnostics []error
	extractorVersions := map[string]int{}
	entries := make([]Entry, 0, len(paths))
	for _, r := range results {
		if r.Warning != nil {
			diagnostics = append(diagnostics, r.Warning)
		}
		if r.Analysis.File.ID == "" {
			continue // no extractor for this path, or it could not be read
		}
		entries = append(entries, Entry{
			ContentHash:      r.Analysis.File.ContentHash,
			ExtractorVersion: r.Analysis.File.ExtractorVersion,
			Analysis:         r.Analysis,
		})
		extractorVersions[string(r.Analysis.File.Language)] = r.Analysis.File.ExtractorVersion
	}
	for _, e := range carried {
		entries = append(entries, e)
		extractorVersions[string(e.Analysis.File.Language)] = e.ExtractorVersion
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Analysis.File.ID < entries[j].Analysis.File.ID
	})

	return &Snapshot{
		SchemaVersion:     SchemaVersion,
		ExtractorVersions: extractorVersions,
		Root:              root,
		Entries:           entries,
	}, diagnostics, nil
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
