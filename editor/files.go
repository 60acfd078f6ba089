// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"log/slog"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/scene"
	"cogentcore.org/openrenderer/scenefile"
	"github.com/cespare/xxhash/v2"
)

// Extension is the file extension of scene files.
const Extension = ".yaml"

// ErrNoPath is returned by [Editor.Save] for a scene that has never
// been saved or opened.
var ErrNoPath = errors.New("editor: scene has no file, use SaveAs")

// NewScene replaces the open scene with the default scene.
func (ed *Editor) NewScene() {
	ed.setScene(scene.NewDefault(ed.ser.Assets()), "")
}

// Open replaces the open scene with the one in path. On error the open
// scene is kept and the error is returned.
func (ed *Editor) Open(path string) error {
	sc, err := ed.ser.Open(path)
	if err != nil {
		return err
	}
	resolved, _ := scenefile.ResolvePath(path)
	ed.setScene(sc, resolved)
	return nil
}

// Load is like [Editor.Open] but never fails: if path cannot be loaded
// the default scene is opened instead and the error is logged.
func (ed *Editor) Load(path string) {
	if err := ed.Open(path); err != nil {
		slog.Warn("[Serializer] Falling back to default scene.", "path", path, "err", err)
		ed.NewScene()
	}
}

// Save writes the open scene to its file.
func (ed *Editor) Save() error {
	if ed.path == "" {
		return ErrNoPath
	}
	return ed.SaveAs(ed.path)
}

// SaveAs writes the open scene to path, which becomes its file.
func (ed *Editor) SaveAs(path string) error {
	if path == "" {
		return scenefile.ErrEmptyPath
	}
	if err := ed.ser.Serialize(ed.sc, path); err != nil {
		return err
	}
	changed := path != ed.path
	ed.path = path
	ed.markSaved()
	if changed && ed.watcher != nil {
		ed.watchPath()
	}
	return nil
}

// DefaultSaveName returns the file name offered by a save dialog: the
// base name of the scene with a .yaml extension.
func (ed *Editor) DefaultSaveName() string {
	name := filepath.Base(ed.sc.Name())
	if strings.EqualFold(filepath.Ext(name), Extension) {
		return name
	}
	return name + Extension
}

// Dirty returns whether the scene has changed since it was last
// opened or saved.
func (ed *Editor) Dirty() bool {
	return ed.hash() != ed.savedHash
}

// hash returns the hash of the scene as it would be saved.
func (ed *Editor) hash() uint64 {
	b, err := ed.ser.Marshal(ed.sc)
	if errors.Log(err) != nil {
		return 0
	}
	return xxhash.Sum64(b)
}

func (ed *Editor) markSaved() {
	ed.savedHash = ed.hash()
	ed.diskHash = ed.savedHash
}
