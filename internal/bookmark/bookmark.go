// Package bookmark implements durable, relocation-tolerant file references.
//
// A Handle records the absolute path of a file together with a content
// fingerprint (size plus a hash of the leading bytes). Resolution first tries
// the recorded path; if the file has been moved within the library directory,
// the fingerprint is used to find it again. A resolution that required the
// fingerprint scan is reported as stale so the caller can persist a refreshed
// handle (repair-on-read).
package bookmark

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bookdesk/bookdesk/internal/common"
)

// fingerprintLimit bounds how many leading bytes participate in the
// fingerprint so that resolving never reads whole documents.
const fingerprintLimit = 64 * 1024

// Handle is a durable reference to one file. It survives the file being
// renamed or moved within the directory it is resolved against.
type Handle struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	Fingerprint string `json:"fingerprint"`
}

// Resolution is the outcome of resolving a Handle.
type Resolution struct {
	// Path is a currently readable location of the file.
	Path string

	// Stale is true when the file was found somewhere other than the
	// recorded path. The caller should regenerate and persist the handle.
	Stale bool
}

// New creates a Handle for the file at path. The path is made absolute and
// the file is read (briefly) to compute its fingerprint.
func New(path string) (*Handle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs %s: %w", path, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", abs, common.ErrorSourceUnreadable)
	}

	fp, err := fingerprint(abs)
	if err != nil {
		return nil, err
	}

	return &Handle{Path: abs, Size: fi.Size(), Fingerprint: fp}, nil
}

// Decode parses a Handle from its serialized form.
func Decode(blob []byte) (*Handle, error) {
	if len(blob) == 0 {
		return nil, common.ErrorInvalidHandle
	}
	var h Handle
	if err := json.Unmarshal(blob, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInvalidHandle, err)
	}
	if h.Path == "" || h.Fingerprint == "" {
		return nil, common.ErrorInvalidHandle
	}
	return &h, nil
}

// Encode serializes the Handle for storage as an opaque blob.
func (h *Handle) Encode() ([]byte, error) {
	return json.Marshal(h)
}

// Resolve locates the referenced file. The recorded path wins when it still
// matches the fingerprint; otherwise searchDir is scanned for a file with the
// same size and fingerprint and the resolution is marked stale. When neither
// works, common.ErrorUnresolvable is returned.
func (h *Handle) Resolve(searchDir string) (*Resolution, error) {
	if h.matches(h.Path) {
		return &Resolution{Path: h.Path}, nil
	}

	var found string
	err := filepath.WalkDir(searchDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		if h.matches(path) {
			found = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", searchDir, err)
	}
	if found == "" {
		return nil, fmt.Errorf("%s: %w", h.Path, common.ErrorUnresolvable)
	}

	return &Resolution{Path: found, Stale: true}, nil
}

// matches reports whether the file at path has the handle's size and
// fingerprint.
func (h *Handle) matches(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() || fi.Size() != h.Size {
		return false
	}
	fp, err := fingerprint(path)
	if err != nil {
		return false
	}
	return fp == h.Fingerprint
}

func fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, io.LimitReader(f, fingerprintLimit)); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
