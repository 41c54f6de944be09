/*
Package templatetest serves templates from memory so rendering can be unit tested without testdata/ directories.

The templates shipped with package template remain visible behind the mocked ones,
so a test only mocks the templates it overrides.
*/
package templatetest

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/xy-planning-network/rest/http/template"
)

// NewParser constructs a *template.Parse reading the mocked files.
func NewParser(tmpls ...FileMocker) *template.Parse {
	return template.NewParser(template.WithFS(NewMockFS(tmpls...)))
}

// A FileMocker is a file held in memory.
type FileMocker interface {
	fs.FileInfo
	Data() []byte
}

// A MockFS is an fs.FS of FileMockers, looked up by their full name.
type MockFS []FileMocker

var (
	_ fs.GlobFS     = MockFS{}
	_ fs.ReadFileFS = MockFS{}
	_ fs.StatFS     = MockFS{}
)

// NewMockFS constructs an fs.FS serving tmpls.
// When two files share a name, the later one wins.
func NewMockFS(tmpls ...FileMocker) fs.FS {
	mfs := make(MockFS, 0, len(tmpls))
	for i := len(tmpls) - 1; i >= 0; i-- {
		if _, ok := mfs.lookup(tmpls[i].Name()); !ok {
			mfs = append(mfs, tmpls[i])
		}
	}

	sort.Slice(mfs, func(i, j int) bool { return mfs[i].Name() < mfs[j].Name() })
	return mfs
}

// Glob returns the names of the files matching pattern, in lexical order.
func (mfs MockFS) Glob(pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}

	var matches []string
	for _, f := range mfs {
		if ok, _ := path.Match(pattern, f.Name()); ok {
			matches = append(matches, f.Name())
		}
	}

	return matches, nil
}

// Open opens the file named name for reading.
func (mfs MockFS) Open(name string) (fs.File, error) {
	f, err := mfs.find("open", name)
	if err != nil {
		return nil, err
	}

	return &openFile{FileMocker: f, r: bytes.NewReader(f.Data())}, nil
}

// ReadFile returns a copy of the contents of the file named name.
func (mfs MockFS) ReadFile(name string) ([]byte, error) {
	f, err := mfs.find("read", name)
	if err != nil {
		return nil, err
	}

	return bytes.Clone(f.Data()), nil
}

// Stat describes the file named name.
func (mfs MockFS) Stat(name string) (fs.FileInfo, error) {
	return mfs.find("stat", name)
}

func (mfs MockFS) find(op, name string) (FileMocker, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}

	f, ok := mfs.lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}

	return f, nil
}

func (mfs MockFS) lookup(name string) (FileMocker, bool) {
	for _, f := range mfs {
		if f.Name() == name {
			return f, true
		}
	}

	return nil, false
}

// A MockFile is a regular, read-only file held in memory.
type MockFile struct {
	data    []byte
	modTime time.Time
	name    string
}

// NewMockFile constructs a FileMocker named name holding data.
func NewMockFile(name string, data []byte) FileMocker {
	return &MockFile{data: data, modTime: time.Now(), name: name}
}

func (m *MockFile) Data() []byte       { return m.data }
func (m *MockFile) IsDir() bool        { return false }
func (m *MockFile) Mode() fs.FileMode  { return 0o444 }
func (m *MockFile) ModTime() time.Time { return m.modTime }
func (m *MockFile) Name() string       { return m.name }
func (m *MockFile) Size() int64        { return int64(len(m.data)) }
func (m *MockFile) Sys() any           { return nil }

// An openFile reads a FileMocker from its start.
type openFile struct {
	FileMocker
	r *bytes.Reader
}

func (f *openFile) Close() error               { return nil }
func (f *openFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *openFile) Stat() (fs.FileInfo, error) { return f.FileMocker, nil }

var _ io.Reader = (*openFile)(nil)
