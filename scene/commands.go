// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Commands is a queue of deferred scene edits. UI code pushes structural
// changes (create, delete, add or remove components) while it iterates
// over the scene, and the frame loop applies them with [Commands.Flush].
// The zero value is ready to use.
type Commands struct {
	queue []func(sc *Scene)
}

// Push queues fun to run at the next flush.
func (c *Commands) Push(fun func(sc *Scene)) {
	c.queue = append(c.queue, fun)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Flush runs the queued commands on sc in push order and returns how
// many ran. Commands pushed while flushing run at the next flush.
func (c *Commands) Flush(sc *Scene) int {
	q := c.queue
	c.queue = nil
	for _, fun := range q {
		fun(sc)
	}
	return len(q)
}

// Discard drops all queued commands.
func (c *Commands) Discard() {
	c.queue = nil
}
