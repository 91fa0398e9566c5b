// Package filesys abstracts the file operations the merge core performs, so
// tests and embedders can substitute an in-memory implementation.
package filesys

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
)

// FS is the replaceable filesystem collaborator.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Exists(path string) bool
	// Glob returns paths of regular files under root matching pattern.
	// Pattern follows doublestar syntax ("**" spans directories).
	Glob(root, pattern string) ([]string, error)
}

// OS is the real-filesystem implementation.
type OS struct{}

func (OS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.FromFS("read", path, err)
	}
	return data, nil
}

func (OS) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fault.FromFS("write", path, err)
	}
	return nil
}

func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OS) Glob(root, pattern string) ([]string, error) {
	var out []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		out = append(out, filepath.Join(root, filepath.FromSlash(p)))
		return nil
	})
	if err != nil {
		return nil, fault.FromFS("scan", root, err)
	}
	return out, nil
}

// SplitLines splits content into lines, best effort: it tolerates a missing
// trailing newline and strips CR from CRLF endings. Non-text content is
// treated as opaque bytes and split the same way, never rejected.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// JoinLines is the inverse of SplitLines for non-empty input: lines joined
// by \n with a trailing newline.
func JoinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
