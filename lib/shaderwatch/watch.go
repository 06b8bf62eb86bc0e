// Package shaderwatch reports when shader override files are rewritten.
package shaderwatch

import "time"

// settle is how long to wait after a write before reporting it, so that an
// editor has finished with the file.
const settle = 100 * time.Millisecond

// Changes is what the render loop consumes. Several writes in a row may be
// reported as one.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
