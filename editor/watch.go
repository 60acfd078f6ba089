// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to one file. It watches the directory of the
// file, so that editors that save by renaming are seen too.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
	file    string
	changed bool
}

// NewWatcher returns a new watcher that watches nothing.
func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{watcher: w}, nil
}

// SetFile sets the file to watch. An empty file stops watching.
func (w *Watcher) SetFile(file string) error {
	if file != "" {
		file = filepath.Clean(file)
		if abs, err := filepath.Abs(file); err == nil {
			file = abs
		}
	}
	if file == w.file {
		return nil
	}
	dir := filepath.Dir(file)
	if w.dir != "" && (file == "" || dir != w.dir) {
		errors.Log(w.watcher.Remove(w.dir))
		w.dir = ""
	}
	w.file = file
	w.changed = false
	if file == "" || w.dir == dir {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.dir = dir
	return nil
}

// File returns the watched file.
func (w *Watcher) File() string {
	return w.file
}

// Changed drains the pending events without blocking and returns
// whether the watched file was written, created or renamed onto since
// the last call.
func (w *Watcher) Changed() bool {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return w.take()
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				if name, err := filepath.Abs(ev.Name); err == nil && name == w.file {
					w.changed = true
				}
			}
		case err, ok := <-w.watcher.Errors:
			if ok {
				slog.Error("file watcher", "file", w.file, "err", err)
			}
		default:
			return w.take()
		}
	}
}

func (w *Watcher) take() bool {
	c := w.changed
	w.changed = false
	return c
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch starts watching the file of the open scene, which is reloaded
// by [Editor.Poll] when it changes on disk and AutoReload is on.
func (ed *Editor) Watch() error {
	if ed.watcher != nil {
		return nil
	}
	w, err := NewWatcher()
	if err != nil {
		return err
	}
	ed.watcher = w
	ed.watchPath()
	return nil
}

func (ed *Editor) watchPath() {
	errors.Log(ed.watcher.SetFile(ed.path))
}

// Poll reloads the open scene if its file changed on disk to contents
// other than what the editor last loaded or saved. It never blocks,
// and does nothing unless [Editor.Watch] has been called. A changed
// file that fails to load is logged and the open scene is kept.
func (ed *Editor) Poll() bool {
	if ed.watcher == nil || ed.path == "" {
		return false
	}
	if !ed.watcher.Changed() || !ed.AutoReload {
		return false
	}
	b, err := os.ReadFile(ed.path)
	if err != nil {
		slog.Warn("could not read changed scene file", "path", ed.path, "err", err)
		return false
	}
	h := xxhash.Sum64(b)
	if h == ed.diskHash || h == ed.savedHash {
		return false
	}
	sc, err := ed.ser.Unmarshal(b, ed.sc.Name())
	if err != nil {
		slog.Warn("could not reload changed scene file", "path", ed.path, "err", err)
		return false
	}
	slog.Info("reloaded scene", "path", ed.path)
	ed.setScene(sc, ed.path)
	ed.diskHash = h
	return true
}
