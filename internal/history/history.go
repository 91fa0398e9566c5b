// Package history persists recent interactive inputs (patterns, search
// roots) through an explicit load/save collaborator. The store is injected
// and lifetime-scoped by the caller; there is no process-wide history.
package history

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
)

// Entry is one remembered input. Entries are kept most recent first.
type Entry struct {
	Value string    `yaml:"value"`
	Kind  string    `yaml:"kind"` // "pattern" or "root"
	At    time.Time `yaml:"at"`
}

// Store loads and saves the full history record set.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// FileStore keeps history in one yaml file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is the per-user history location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fault.FromFS("config-dir", "", err)
	}
	return filepath.Join(base, "blastmerge", "history.yaml"), nil
}

// Load returns the saved entries; a missing file is an empty history.
func (f *FileStore) Load() ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fault.FromFS("load", f.path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fault.Newf(fault.ErrMalformed, "load", f.path, err)
	}
	return entries, nil
}

func (f *FileStore) Save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fault.FromFS("mkdir", filepath.Dir(f.path), err)
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fault.Newf(fault.ErrMalformed, "save", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fault.FromFS("save", f.path, err)
	}
	return nil
}

// Append adds value at the front, deduplicating an existing entry of the
// same value and kind, and caps the result at max entries.
func Append(entries []Entry, value, kind string, max int) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, Entry{Value: value, Kind: kind, At: time.Now().UTC()})
	for _, e := range entries {
		if e.Value == value && e.Kind == kind {
			continue
		}
		out = append(out, e)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// Values filters entries to one kind, preserving recency order.
func Values(entries []Entry, kind string) []string {
	var out []string
	for _, e := range entries {
		if e.Kind == kind {
			out = append(out, e.Value)
		}
	}
	return out
}
