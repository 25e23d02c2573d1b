// Package storage is the narrow filesystem contract the generator core
// works against, with go-billy implementations for disk and memory.
package storage

import (
	"os"
	"path"
	"path/filepath"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/tacogips/sgmtr/internal/debug"
)

// EntryKind classifies a directory entry.
type EntryKind int

const (
	// KindFile is a regular file.
	KindFile EntryKind = iota
	// KindDirectory is a directory.
	KindDirectory
	// KindOther is anything else (symlinks, devices, sockets).
	KindOther
)

// String returns a short name for the kind.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// DirEntry is one entry of a directory listing.
type DirEntry struct {
	Name string
	Kind EntryKind
}

// Backend is the storage contract. Paths are slash-separated and relative
// to the backend root.
type Backend interface {
	// Stat reports whether path exists.
	Stat(path string) (bool, error)

	// ReadDirectory lists the entries of a directory.
	ReadDirectory(path string) ([]DirEntry, error)

	// CreateDirectory creates a directory and any missing parents.
	CreateDirectory(path string) error

	// ReadFile returns the content of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates a file and writes data to it.
	WriteFile(path string, data []byte) error
}

// BillyBackend implements Backend on top of a billy.Filesystem.
type BillyBackend struct {
	fs billy.Filesystem
}

// NewBillyBackend wraps an existing billy filesystem.
func NewBillyBackend(fs billy.Filesystem) *BillyBackend {
	return &BillyBackend{fs: fs}
}

// NewOSBackend returns a backend rooted at dir on the local disk.
func NewOSBackend(dir string) *BillyBackend {
	return NewBillyBackend(osfs.New(dir))
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *BillyBackend {
	return NewBillyBackend(memfs.New())
}

// Stat reports whether path exists.
func (b *BillyBackend) Stat(p string) (bool, error) {
	_, err := b.fs.Stat(clean(p))
	if err == nil {
		return true, nil
	}
	if IsNotExist(err) {
		return false, nil
	}
	return false, newError("stat", p, err)
}

// ReadDirectory lists a directory sorted by name.
func (b *BillyBackend) ReadDirectory(p string) ([]DirEntry, error) {
	infos, err := b.fs.ReadDir(clean(p))
	if err != nil {
		return nil, newError("readdir", p, err)
	}

	entries := make([]DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, DirEntry{Name: info.Name(), Kind: kindOf(info)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// CreateDirectory creates a directory and any missing parents.
// Uses 0755 permissions for created directories.
func (b *BillyBackend) CreateDirectory(p string) error {
	debug.Debug("[storage] Creating directory: %s", p)
	if err := b.fs.MkdirAll(clean(p), 0755); err != nil {
		return newError("mkdir", p, err)
	}
	return nil
}

// ReadFile returns the content of a file.
func (b *BillyBackend) ReadFile(p string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, clean(p))
	if err != nil {
		return nil, newError("read", p, err)
	}
	return data, nil
}

// WriteFile writes data to a file with 0644 permissions, creating parent
// directories when needed.
func (b *BillyBackend) WriteFile(p string, data []byte) error {
	debug.Debug("[storage] Writing file: %s (size: %d bytes)", p, len(data))
	target := clean(p)

	if dir := path.Dir(target); dir != "." && dir != "/" {
		if err := b.fs.MkdirAll(dir, 0755); err != nil {
			return newError("mkdir", dir, err)
		}
	}
	if err := util.WriteFile(b.fs, target, data, 0644); err != nil {
		return newError("write", p, err)
	}
	return nil
}

func kindOf(info os.FileInfo) EntryKind {
	switch {
	case info.IsDir():
		return KindDirectory
	case info.Mode().IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

func clean(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	if p == "" {
		return "."
	}
	return p
}

var _ Backend = (*BillyBackend)(nil)
