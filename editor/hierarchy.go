// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"strings"

	"cogentcore.org/openrenderer/scene"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// FilterSimilarity is the minimum Jaro-Winkler similarity for a name to
// match a hierarchy filter that it does not contain.
const FilterSimilarity = 0.8

// EmptyName is the base name of entities made by [Editor.CreateEmpty].
const EmptyName = "Empty"

// Item is one row of the hierarchy panel.
type Item struct {
	Entity   scene.Entity
	Name     string
	Active   bool
	Selected bool
}

var jaroWinkler = func() *metrics.JaroWinkler {
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false
	return jw
}()

// MatchFilter returns whether name matches the hierarchy filter: an
// empty filter matches everything, otherwise the name must contain the
// filter, ignoring case, or be similar enough to it.
func MatchFilter(filter, name string) bool {
	if filter == "" {
		return true
	}
	if strings.Contains(strings.ToLower(name), strings.ToLower(filter)) {
		return true
	}
	return strutil.Similarity(filter, name, jaroWinkler) >= FilterSimilarity
}

// Hierarchy returns the named entities that match filter, in the order
// they were named.
func (ed *Editor) Hierarchy(filter string) []Item {
	var items []Item
	for _, e := range scene.EntitiesWith[scene.Name](ed.sc) {
		name := ed.sc.EntityName(e)
		if !MatchFilter(filter, name) {
			continue
		}
		items = append(items, Item{Entity: e, Name: name, Active: ed.sc.IsActive(e), Selected: e == ed.selected})
	}
	return items
}

// CreateEmpty queues the creation of an entity named "Empty", or the
// first free "Empty (n)", which is then selected.
func (ed *Editor) CreateEmpty() {
	ed.Commands.Push(func(sc *scene.Scene) {
		e := sc.CreateEntity(sc.UniqueName(EmptyName))
		if e != scene.Null {
			ed.selected = e
		}
	})
}

// Delete queues the deletion of e.
func (ed *Editor) Delete(e scene.Entity) {
	ed.Commands.Push(func(sc *scene.Scene) {
		sc.DeleteEntity(e)
	})
}

// ToggleActive queues flipping whether e is active.
func (ed *Editor) ToggleActive(e scene.Entity) {
	ed.Commands.Push(func(sc *scene.Scene) {
		if sc.Valid(e) {
			sc.SetActive(e, !sc.IsActive(e))
		}
	})
}

// Duplicate queues copying e, and selects the copy.
func (ed *Editor) Duplicate(e scene.Entity) {
	ed.Commands.Push(func(sc *scene.Scene) {
		if d := sc.Duplicate(e); d != scene.Null {
			ed.selected = d
		}
	})
}
