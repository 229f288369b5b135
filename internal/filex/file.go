// Package filex provides file-system helpers for the document library:
// directory creation, readability checks, and collision-safe copies.
package filex

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and any missing parents) if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// IsReadable reports whether path names a regular file that can be opened
// for reading. The file handle is released before returning.
func IsReadable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// randSuffix generates a short random hex string used to disambiguate
// colliding file names.
func randSuffix(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// UniqueDestPath returns a path in dir for the given base name that does not
// collide with an existing file. If dir already contains the name, a short
// random suffix is appended to the stem while the extension is preserved:
// "report.pdf" becomes "report-1a2b.pdf".
func UniqueDestPath(dir, name string) (string, error) {
	dst := filepath.Join(dir, name)
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		return dst, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for {
		suffix, err := randSuffix(2)
		if err != nil {
			return "", fmt.Errorf("generate suffix: %w", err)
		}
		dst = filepath.Join(dir, stem+"-"+suffix+ext)
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			return dst, nil
		}
	}
}

// CopyFile copies src into dir under src's base name, resolving name
// collisions via UniqueDestPath, and returns the destination path.
//
// The source is opened immediately before the copy and closed when the copy
// finishes, whether or not it succeeded. A partially written destination is
// removed on error.
func CopyFile(src, dir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	dst, err := UniqueDestPath(dir, filepath.Base(src))
	if err != nil {
		return "", err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", dst, err)
	}

	return dst, nil
}
