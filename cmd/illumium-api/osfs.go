package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/absfs/absfs"
)

// osFS exposes a directory of the host filesystem through the absfs
// interface, so keyring persistence stays independent of where the
// server actually runs
type osFS struct {
	root string
	cwd  string
}

func newOSFS(root string) *osFS {
	if root == "" {
		root = "."
	}
	return &osFS{root: root}
}

func (fs *osFS) resolve(name string) string {
	return filepath.Join(fs.root, name)
}

func (fs *osFS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	path := fs.resolve(name)
	if flag&os.O_CREATE != 0 {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, flag, perm)
}

func (fs *osFS) Open(name string) (absfs.File, error) {
	return fs.OpenFile(name, os.O_RDONLY, 0)
}

func (fs *osFS) Create(name string) (absfs.File, error) {
	return fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (fs *osFS) Mkdir(name string, perm os.FileMode) error {
	return os.Mkdir(fs.resolve(name), perm)
}

func (fs *osFS) MkdirAll(name string, perm os.FileMode) error {
	return os.MkdirAll(fs.resolve(name), perm)
}

func (fs *osFS) Remove(name string) error {
	return os.Remove(fs.resolve(name))
}

func (fs *osFS) RemoveAll(path string) error {
	return os.RemoveAll(fs.resolve(path))
}

func (fs *osFS) Rename(oldpath, newpath string) error {
	return os.Rename(fs.resolve(oldpath), fs.resolve(newpath))
}

func (fs *osFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(fs.resolve(name))
}

func (fs *osFS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(fs.resolve(name), mode)
}

func (fs *osFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(fs.resolve(name), atime, mtime)
}

func (fs *osFS) Chown(name string, uid, gid int) error {
	return os.Chown(fs.resolve(name), uid, gid)
}

func (fs *osFS) Truncate(name string, size int64) error {
	return os.Truncate(fs.resolve(name), size)
}

func (fs *osFS) Separator() uint8 {
	return os.PathSeparator
}

func (fs *osFS) ListSeparator() uint8 {
	return os.PathListSeparator
}

func (fs *osFS) Chdir(dir string) error {
	fs.cwd = dir
	return nil
}

func (fs *osFS) Getwd() (string, error) {
	if fs.cwd == "" {
		return "/", nil
	}
	return fs.cwd, nil
}

func (fs *osFS) TempDir() string {
	return os.TempDir()
}
