// Package config persists named batch configurations. The store is owned and
// lifetime-scoped by the caller; nothing here is process-global.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/batch"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
)

const configExt = ".yaml"

// Store reads and writes batch configurations under one directory, one yaml
// file per recipe named after it.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is the per-user location for batch recipes.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fault.FromFS("config-dir", "", err)
	}
	return filepath.Join(base, "blastmerge", "batches"), nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+configExt)
}

// Save validates and writes cfg, overwriting any recipe of the same name.
func (s *Store) Save(cfg batch.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fault.FromFS("mkdir", s.dir, err)
	}

	v := viper.New()
	v.Set("name", cfg.Name)
	v.Set("patterns", cfg.Patterns)
	v.Set("search_roots", cfg.SearchRoots)
	v.Set("exclusions", cfg.Exclusions)
	v.Set("skip_empty_patterns", cfg.SkipEmptyPatterns)
	v.Set("prompt_before_each_pattern", cfg.PromptBeforeEachPattern)

	if err := v.WriteConfigAs(s.path(cfg.Name)); err != nil {
		return fault.FromFS("write", s.path(cfg.Name), err)
	}
	return nil
}

// Load reads one recipe by name.
func (s *Store) Load(name string) (batch.Configuration, error) {
	v := viper.New()
	v.SetConfigFile(s.path(name))
	if err := v.ReadInConfig(); err != nil {
		return batch.Configuration{}, fault.FromFS("load", s.path(name), err)
	}

	var cfg batch.Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return batch.Configuration{}, fault.Newf(fault.ErrMalformed, "load", s.path(name), err)
	}
	return cfg, nil
}

// List returns the names of all saved recipes, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fault.FromFS("list", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), configExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), configExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a recipe. Deleting a missing recipe reports NotFound.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		return fault.FromFS("delete", s.path(name), err)
	}
	return nil
}
