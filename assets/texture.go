// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/gpu"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultName is the name of the default texture and shader.
const DefaultName = "default"

// ErrNotImage is returned when a texture file is not a recognized image.
var ErrNotImage = errors.New("assets: not an image file")

// Texture is a 2D texture on the device. Textures are shared by pointer
// between materials; compare pointers to tell textures apart.
type Texture struct {

	// Name is the base name of the file, or "default".
	Name string

	// Path is the file the texture was loaded from.
	// It is empty for the default texture.
	Path string

	// Handle is the device texture.
	Handle gpu.Texture

	// Size is the size of the image in pixels.
	Size image.Point

	refs int
}

func whiteImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return img
}

func (rg *Registry) newTexture(name, path string, img *image.RGBA) *Texture {
	return &Texture{
		Name:   name,
		Path:   path,
		Handle: rg.dev.NewTexture(img),
		Size:   img.Bounds().Size(),
	}
}

// Texture returns the texture for the given file, loading it on first
// use, and adds a reference to it that must be given back with
// [Registry.Release]. An empty path returns the default texture.
func (rg *Registry) Texture(path string) (*Texture, error) {
	if path == "" {
		return rg.defaultTexture, nil
	}
	if tx, ok := rg.textures.ValueByKeyTry(path); ok {
		tx.refs++
		return tx, nil
	}
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	tx := rg.newTexture(filepath.Base(path), path, img)
	tx.refs = 1
	rg.textures.Add(path, tx)
	slog.Debug("loaded texture", "path", path, "size", tx.Size)
	return tx, nil
}

// TextureOrDefault is like [Registry.Texture] but logs a load failure
// and returns the default texture instead.
func (rg *Registry) TextureOrDefault(path string) *Texture {
	tx, err := rg.Texture(path)
	if err != nil {
		slog.Warn("could not load texture, using default", "path", path, "err", err)
		return rg.defaultTexture
	}
	return tx
}

// Release gives back a reference obtained from [Registry.Texture],
// freeing the texture when none remain. The default texture is never
// freed, and nil is ignored.
func (rg *Registry) Release(tx *Texture) {
	if tx == nil || tx == rg.defaultTexture {
		return
	}
	cur, ok := rg.textures.ValueByKeyTry(tx.Path)
	if !ok || cur != tx {
		return
	}
	tx.refs--
	if tx.refs > 0 {
		return
	}
	rg.dev.DeleteTexture(tx.Handle)
	rg.textures.DeleteKey(tx.Path)
	slog.Debug("freed texture", "path", tx.Path)
}

// Retain adds a reference to a texture already held, for example when a
// material is copied.
func (rg *Registry) Retain(tx *Texture) {
	if tx == nil || tx == rg.defaultTexture {
		return
	}
	tx.refs++
}

// Refs returns the number of references held on the texture for path,
// and whether it is loaded.
func (rg *Registry) Refs(path string) (int, bool) {
	tx, ok := rg.textures.ValueByKeyTry(path)
	if !ok {
		return 0, false
	}
	return tx.refs, true
}

// Preload decodes the given image files in parallel and uploads them,
// so that later [Registry.Texture] calls for them do not hit the disk.
// Preloaded textures hold no reference until one is taken, and those
// never taken are freed with [Registry.Unload]. Paths that
// are empty, already loaded, or fail to decode are skipped, and the
// first decode error is returned.
func (rg *Registry) Preload(paths []string) error {
	var todo []string
	seen := map[string]bool{}
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if _, ok := rg.textures.ValueByKeyTry(p); ok {
			continue
		}
		todo = append(todo, p)
	}
	if len(todo) == 0 {
		return nil
	}
	imgs := make([]*image.RGBA, len(todo))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range todo {
		g.Go(func() error {
			img, err := DecodeImage(p)
			if err != nil {
				return err
			}
			imgs[i] = img
			return nil
		})
	}
	err := g.Wait()
	// device calls stay on this goroutine
	for i, img := range imgs {
		if img == nil {
			continue
		}
		p := todo[i]
		rg.textures.Add(p, rg.newTexture(filepath.Base(p), p, img))
	}
	return err
}

// Unload frees the textures for the given paths that hold no
// references, such as preloaded textures that were never used, and
// returns how many it freed.
func (rg *Registry) Unload(paths []string) int {
	n := 0
	for _, p := range paths {
		tx, ok := rg.textures.ValueByKeyTry(p)
		if !ok || tx.refs > 0 {
			continue
		}
		rg.dev.DeleteTexture(tx.Handle)
		rg.textures.DeleteKey(p)
		n++
	}
	return n
}

// DecodeImage reads and decodes the given image file into RGBA, flipped
// vertically so that the first row is the bottom of the image, as GL
// texture coordinates expect.
func DecodeImage(path string) (*image.RGBA, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !filetype.IsImage(b) {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, path)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decoding %s: %w", path, err)
	}
	return transform.FlipV(toRGBA(img)), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
