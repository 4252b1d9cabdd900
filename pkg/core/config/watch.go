// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     config
// Description: File change notification for configs and scripts
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
)

// Watch signals on the returned channel whenever path is written, created
// or replaced. Changes arriving within debounce of each other are
// coalesced into one signal. The channel is closed when ctx is done.
//
// The directory is watched instead of the file so editors that save by
// renaming a temporary file keep triggering.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to resolve watch path").
			WithCode(mdwerror.CodeWatchFailed).
			WithDetail("path", path).
			WithOperation("config.Watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeWatchFailed).
			WithOperation("config.Watch")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeWatchFailed).
			WithDetail("path", path).
			WithOperation("config.Watch")
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
