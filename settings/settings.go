// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings has the persistent user settings of the editor,
// stored as TOML in the user's config directory.
package settings

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"cogentcore.org/core/base/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the settings file, relative to the home directory.
const DefaultFile = "~/.config/openrenderer/settings.toml"

// MaxRecent is the number of recent scenes remembered.
const MaxRecent = 8

// Settings are the editor user settings.
type Settings struct {

	// File is where the settings are stored. A leading ~ is expanded
	// to the home directory.
	File string `toml:"-"`

	// Window is the main window geometry.
	Window WindowSettings

	// Scene is the scene opened at startup.
	Scene string

	// Recent has recently opened scenes, most recent first.
	Recent []string

	// CameraSpeed is the camera controller speed in units per frame.
	CameraSpeed float32

	// FOV is the vertical field of view of the viewport camera, in degrees.
	FOV float32

	// AutoReload reloads the open scene when its file changes on disk.
	AutoReload bool
}

// WindowSettings are the main window settings.
type WindowSettings struct {
	Width  int
	Height int
	Title  string
}

// New returns settings with default values, stored in [DefaultFile].
func New() *Settings {
	se := &Settings{File: DefaultFile}
	se.Defaults()
	return se
}

// Defaults sets the default values for all of the settings.
func (se *Settings) Defaults() {
	se.Window = WindowSettings{Width: 1920, Height: 1080, Title: "OpenRenderer"}
	se.Scene = "Editor/scenes/Scene1.yaml"
	se.Recent = nil
	se.CameraSpeed = 0.2
	se.FOV = 45
	se.AutoReload = true
}

// Filename returns the settings file path with ~ expanded.
func (se *Settings) Filename() string {
	fnm, err := homedir.Expand(se.File)
	if errors.Log(err) != nil {
		return se.File
	}
	return fnm
}

// Open reads the settings from [Settings.Filename], on top of the
// current values.
func (se *Settings) Open() error {
	b, err := os.ReadFile(se.Filename())
	if err != nil {
		return err
	}
	return toml.NewDecoder(bytes.NewReader(b)).Decode(se)
}

// Save writes the settings to [Settings.Filename], making the directory
// if needed.
func (se *Settings) Save() error {
	fnm := se.Filename()
	if err := os.MkdirAll(filepath.Dir(fnm), 0755); err != nil {
		return err
	}
	b, err := toml.Marshal(se)
	if err != nil {
		return err
	}
	return os.WriteFile(fnm, b, 0666)
}

// Load sets the defaults, then opens the saved settings, saving the
// defaults if there are none yet, and then applies them. Errors are
// logged, leaving the defaults in place.
func (se *Settings) Load() {
	se.Defaults()
	err := se.Open()
	if errors.Is(err, fs.ErrNotExist) {
		errors.Log(se.Save())
	} else if err != nil {
		slog.Warn("could not open settings, using defaults", "file", se.Filename(), "err", err)
		se.Defaults()
	}
	se.Apply()
}

// Apply fixes any out of range values.
func (se *Settings) Apply() {
	if se.Window.Width <= 0 || se.Window.Height <= 0 {
		se.Window.Width, se.Window.Height = 1920, 1080
	}
	if se.CameraSpeed <= 0 {
		se.CameraSpeed = 0.2
	}
	if se.FOV <= 0 || se.FOV >= 180 {
		se.FOV = 45
	}
	if len(se.Recent) > MaxRecent {
		se.Recent = se.Recent[:MaxRecent]
	}
}

// AddRecent puts the scene path at the front of the recent list,
// removing any earlier entry for it.
func (se *Settings) AddRecent(path string) {
	if path == "" {
		return
	}
	se.Recent = slices.DeleteFunc(se.Recent, func(s string) bool { return s == path })
	se.Recent = slices.Insert(se.Recent, 0, path)
	if len(se.Recent) > MaxRecent {
		se.Recent = se.Recent[:MaxRecent]
	}
}
