package platform

import (
	"io"
	"io/fs"
	"os"
)

// Permission constants for everything the installer creates.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// File is the writable handle returned by FS.OpenFile.
type File interface {
	io.Writer
	Close() error
}

// FS is the set of destination-side filesystem operations the installer
// needs. OSFS is the real implementation; tests wrap it to inject failures.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm fs.FileMode) error
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
	Remove(name string) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}

// OSFS implements FS on the host filesystem.
type OSFS struct{}

func (OSFS) Stat(name string) (fs.FileInfo, error)        { return os.Stat(name) }
func (OSFS) Lstat(name string) (fs.FileInfo, error)       { return os.Lstat(name) }
func (OSFS) ReadDir(name string) ([]fs.DirEntry, error)   { return os.ReadDir(name) }
func (OSFS) ReadFile(name string) ([]byte, error)         { return os.ReadFile(name) }
func (OSFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (OSFS) Remove(name string) error                     { return os.Remove(name) }
func (OSFS) Symlink(oldname, newname string) error        { return os.Symlink(oldname, newname) }
func (OSFS) Readlink(name string) (string, error)         { return os.Readlink(name) }

func (OSFS) OpenFile(name string, flag int, perm fs.FileMode) (File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Exists reports whether name exists without following a final symlink, so a
// dangling link counts as present.
func Exists(fsys FS, name string) (bool, error) {
	_, err := fsys.Lstat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
