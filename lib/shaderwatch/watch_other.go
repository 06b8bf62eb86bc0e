//go:build !linux

package shaderwatch

import (
	"errors"
	"fmt"
)

type Watcher struct {
	changes chan struct{}
}

func Watch(files ...string) (*Watcher, error) {
	return nil, fmt.Errorf("watching shader files: %w", errors.ErrUnsupported)
}

func (w *Watcher) Close() error {
	return nil
}
