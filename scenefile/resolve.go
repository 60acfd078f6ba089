// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenefile

import (
	"os"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
)

// ResolvePath finds the file for a scene path. Absolute paths are used
// as is. A relative path is tried against the working directory and then
// each of its ancestors, and the first that exists is returned. If none
// exists, the path joined to the working directory is returned with
// false, for messages.
func ResolvePath(path string) (string, bool) {
	if filepath.IsAbs(path) {
		return path, exists(path)
	}
	cwd, err := os.Getwd()
	if errors.Log(err) != nil {
		return path, exists(path)
	}
	return ResolvePathFrom(cwd, path)
}

// ResolvePathFrom is [ResolvePath] starting from dir instead of the
// working directory.
func ResolvePathFrom(dir, path string) (string, bool) {
	if filepath.IsAbs(path) {
		return path, exists(path)
	}
	root := dir
	for {
		cand := filepath.Join(root, path)
		if exists(cand) {
			return cand, true
		}
		parent := filepath.Dir(root)
		if parent == root {
			break
		}
		root = parent
	}
	return filepath.Join(dir, path), false
}

func exists(path string) bool {
	ok, err := fsx.FileExists(path)
	return ok && err == nil
}
