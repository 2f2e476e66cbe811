package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const probePrefix = ".ai-init-symlink-probe-"

// SymlinkSupported reports whether symbolic links can be created inside dir.
// It creates and removes a throwaway link, since support depends on the
// filesystem and on Windows developer mode, not only on the OS.
func SymlinkSupported(fsys FS, dir string) bool {
	link := filepath.Join(dir, probePrefix+strconv.Itoa(os.Getpid()))
	if err := fsys.Symlink(".", link); err != nil {
		return false
	}
	_ = fsys.Remove(link)
	return true
}

// CopyFile copies src to dst byte for byte. dst must not exist; an existing
// dst is reported as an error wrapping fs.ErrExist rather than overwritten.
// A partially written dst is removed on failure.
func CopyFile(fsys FS, src, dst string) (err error) {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePerm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(dst)
		}
	}()

	if _, err = out.Write(data); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
