// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command openrenderer is a small 3D scene editor.
package main

import (
	"runtime"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/openrenderer/logx"
	"cogentcore.org/openrenderer/settings"
	"github.com/jinzhu/copier"
)

func init() {
	// glfw and OpenGL calls must be made on the main thread.
	runtime.LockOSThread()
}

// Config is the command line configuration of openrenderer.
type Config struct {

	// Scene is the scene file to open, instead of the one in the settings.
	Scene string `posarg:"0" required:"-"`

	// Settings is the settings file to use.
	Settings string `flag:"settings"`

	// Width and Height override the window size in the settings.
	Width  int `flag:"width"`
	Height int `flag:"height"`

	// NoWatch turns off reloading the scene when its file changes.
	NoWatch bool `flag:"no-watch"`

	// VeryVerbose shows debug messages.
	VeryVerbose bool `flag:"vv,very-verbose"`

	// Verbose shows info messages.
	Verbose bool `flag:"v,verbose"`

	// Quiet only shows errors.
	Quiet bool `flag:"q,quiet"`
}

func main() { //types:skip
	opts := cli.DefaultOptions("openrenderer", "A small real-time 3D scene editor.")
	cli.Run(opts, &Config{}, Run)
}

// Run opens the editor window and runs it until it is closed.
func Run(c *Config) error { //cli:cmd -root
	logx.UserLevel = logx.LevelFromFlags(c.VeryVerbose, c.Verbose, c.Quiet)
	logx.SetDefaultLogger()

	se := settings.New()
	if c.Settings != "" {
		se.File = c.Settings
	}
	se.Load()
	if err := overlay(se, c); err != nil {
		return err
	}

	app, err := NewApp(se)
	if err != nil {
		return err
	}
	defer app.Close()
	app.Run()
	errors.Log(se.Save())
	return nil
}

// overlay copies the options given on the command line onto se.
func overlay(se *settings.Settings, c *Config) error {
	var cs settings.Settings
	cs.Scene = c.Scene
	cs.Window.Width = c.Width
	cs.Window.Height = c.Height
	if err := copier.CopyWithOption(&se.Window, &cs.Window, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}
	if cs.Scene != "" {
		se.Scene = cs.Scene
	}
	if c.NoWatch {
		se.AutoReload = false
	}
	se.Apply()
	return nil
}
