// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package stagingdir stages files in a temporary directory and moves them into
// their destination once they are complete.
//
// A partially-written output file never appears under its final name: either
// the previous file (if any) or the complete new file is present.
package stagingdir

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// D manages a staging directory.
//
// While D is active, its files reside in a temporary location. Each file can
// be committed into a destination directory individually. Once finished, D
// should be destroyed, deleting anything that was not committed.
type D struct {
	// path is the path of the staging directory.
	path string
}

// New creates a new staging directory underneath of tempDir.
//
// tempDir should be on the same filesystem as the eventual destination, so
// that commits are atomic renames.
func New(tempDir, prefix string) (*D, error) {
	stagingPath, err := ioutil.TempDir(tempDir, prefix)
	if err != nil {
		return nil, errors.Wrap(err, "creating staging directory")
	}
	return &D{path: stagingPath}, nil
}

// Path returns the staging path for the file name.
func (sd *D) Path(name string) string {
	if sd.path == "" {
		panic("invalid staging directory")
	}
	return filepath.Join(sd.path, name)
}

// WriteFile writes data to the staged file name.
func (sd *D) WriteFile(name string, data []byte) error {
	if err := ioutil.WriteFile(sd.Path(name), data, 0644); err != nil {
		return errors.Wrapf(err, "staging %q", name)
	}
	return nil
}

// Commit atomically moves the staged file name into destDir, replacing any
// file already there. It returns the destination path.
func (sd *D) Commit(name, destDir string) (string, error) {
	if sd.path == "" {
		return "", errors.New("invalid staging directory")
	}

	dest := filepath.Join(destDir, name)

	// If something already exists at our destination path, move it aside into
	// the staging directory, where Destroy will purge it.
	if _, err := os.Stat(dest); err == nil {
		killDir, err := ioutil.TempDir(sd.path, "overwrite")
		if err != nil {
			return "", errors.Wrap(err, "create overwrite directory")
		}

		// If this fails, we will still try the rename, just in case it works.
		_ = os.Rename(dest, filepath.Join(killDir, name))
	}

	if err := os.Rename(sd.Path(name), dest); err != nil {
		return "", errors.Wrapf(err, "moving staged file into place (%q => %q)", sd.Path(name), dest)
	}
	return dest, nil
}

// Destroy purges the staging directory and its remaining contents.
func (sd *D) Destroy() error {
	if sd.path == "" {
		// There is nothing to destroy.
		return nil
	}

	if err := os.RemoveAll(sd.path); err != nil {
		return err
	}

	sd.path = "" // Destroyed.
	return nil
}
