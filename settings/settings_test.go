// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	se := New()
	assert.Equal(t, 1920, se.Window.Width)
	assert.Equal(t, 1080, se.Window.Height)
	assert.Equal(t, "OpenRenderer", se.Window.Title)
	assert.Equal(t, "Editor/scenes/Scene1.yaml", se.Scene)
	assert.Equal(t, float32(0.2), se.CameraSpeed)
	assert.NotContains(t, se.Filename(), "~")
}

func TestSaveOpen(t *testing.T) {
	se := New()
	se.File = filepath.Join(t.TempDir(), "sub", "settings.toml")
	se.Scene = "scenes/two.yaml"
	se.AddRecent("a.yaml")
	se.Window.Width = 800
	require.NoError(t, se.Save())

	b, err := os.ReadFile(se.File)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Scene = 'scenes/two.yaml'")
	assert.NotContains(t, string(b), "File")

	got := New()
	got.File = se.File
	got.Load()
	assert.Equal(t, "scenes/two.yaml", got.Scene)
	assert.Equal(t, []string{"a.yaml"}, got.Recent)
	assert.Equal(t, 800, got.Window.Width)
	assert.Equal(t, 1080, got.Window.Height)
}

func TestLoadCreatesAndRecovers(t *testing.T) {
	dir := t.TempDir()
	se := New()
	se.File = filepath.Join(dir, "settings.toml")
	se.Load()
	_, err := os.Stat(se.File)
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(se.File, []byte("Window = 3\n"), 0666))
	se.Scene = "changed"
	se.Load()
	assert.Equal(t, "Editor/scenes/Scene1.yaml", se.Scene)
}

func TestApplyAndRecent(t *testing.T) {
	se := New()
	se.CameraSpeed = -1
	se.FOV = 300
	se.Window.Width = 0
	se.Apply()
	assert.Equal(t, float32(0.2), se.CameraSpeed)
	assert.Equal(t, float32(45), se.FOV)
	assert.Equal(t, 1920, se.Window.Width)

	for i := range 10 {
		se.AddRecent(fmt.Sprintf("s%d.yaml", i))
	}
	assert.Len(t, se.Recent, MaxRecent)
	assert.Equal(t, "s9.yaml", se.Recent[0])
	se.AddRecent("s5.yaml")
	assert.Equal(t, "s5.yaml", se.Recent[0])
	assert.Len(t, se.Recent, MaxRecent)
	se.AddRecent("")
	assert.Equal(t, "s5.yaml", se.Recent[0])
}
