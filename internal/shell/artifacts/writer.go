// Package artifacts writes the dry-run manifest and env file to disk.
package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/artpar/ttdeploy/internal/core/compose"
)

// ErrWriteFailed is wrapped by every WriteError.
var ErrWriteFailed = errors.New("artifact write failed")

// WriteError reports an I/O failure writing an artifact.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailed, e.Err}
}

// File modes. The env file holds passwords.
const (
	ManifestMode os.FileMode = 0o644
	EnvMode      os.FileMode = 0o600
)

// Paths are the locations of a written artifact pair.
type Paths struct {
	Manifest string
	Env      string
}

// PathsFor returns where the artifacts of manifestPath land. The env file
// sits next to the manifest, in the compose project directory.
//
// Example:
//
//	PathsFor("./deploy/docker-compose.yml").Env // "deploy/.env"
func PathsFor(manifestPath string) Paths {
	return Paths{
		Manifest: filepath.Clean(manifestPath),
		Env:      filepath.Join(filepath.Dir(manifestPath), compose.EnvFileName),
	}
}

// Write writes both artifacts. Each is first written to a temporary file in
// the target directory; the targets are replaced only after both
// temporaries are complete. The previous manifest is kept aside until the
// env file is in place and put back if that rename fails, so a failed write
// never leaves a new manifest next to an old env file.
func Write(manifestPath string, a compose.Artifacts) (Paths, error) {
	paths := PathsFor(manifestPath)
	dir := filepath.Dir(paths.Manifest)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, &WriteError{Op: "mkdir", Path: dir, Err: err}
	}

	manifestTmp, err := writeTemp(dir, a.Manifest, ManifestMode)
	if err != nil {
		return Paths{}, err
	}
	envTmp, err := writeTemp(dir, a.Env, EnvMode)
	if err != nil {
		os.Remove(manifestTmp)
		return Paths{}, err
	}

	previous, err := moveAside(dir, paths.Manifest)
	if err != nil {
		os.Remove(manifestTmp)
		os.Remove(envTmp)
		return Paths{}, err
	}

	if err := os.Rename(manifestTmp, paths.Manifest); err != nil {
		os.Remove(manifestTmp)
		os.Remove(envTmp)
		restore(previous, paths.Manifest)
		return Paths{}, &WriteError{Op: "rename", Path: paths.Manifest, Err: err}
	}
	if err := os.Rename(envTmp, paths.Env); err != nil {
		os.Remove(envTmp)
		restore(previous, paths.Manifest)
		return Paths{}, &WriteError{Op: "rename", Path: paths.Env, Err: err}
	}

	if previous != "" {
		os.Remove(previous)
	}
	return paths, nil
}

// moveAside renames an existing file at path to a temporary name in dir and
// returns that name, or "" if path does not exist.
func moveAside(dir, path string) (string, error) {
	if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", &WriteError{Op: "stat", Path: path, Err: err}
	}

	f, err := os.CreateTemp(dir, ".ttdeploy-*.bak")
	if err != nil {
		return "", &WriteError{Op: "create", Path: dir, Err: err}
	}
	name := f.Name()
	f.Close()

	if err := os.Rename(path, name); err != nil {
		os.Remove(name)
		return "", &WriteError{Op: "backup", Path: path, Err: err}
	}
	return name, nil
}

// restore puts the file moved aside by moveAside back at path, or removes
// path if nothing was there before.
func restore(previous, path string) {
	if previous == "" {
		os.Remove(path)
		return
	}
	os.Rename(previous, path)
}

func writeTemp(dir, content string, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, ".ttdeploy-*")
	if err != nil {
		return "", &WriteError{Op: "create", Path: dir, Err: err}
	}
	name := f.Name()

	_, err = f.WriteString(content)
	if err == nil {
		err = f.Chmod(mode)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(name)
		return "", &WriteError{Op: "write", Path: name, Err: err}
	}
	return name, nil
}
