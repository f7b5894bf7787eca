// Copyright 2026 The aicore-bridge Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher reloads the config file on change and notifies a subscriber.
// The discovery session cache is invalidated through the callback whenever
// credentials change out from under a running server.
type Watcher struct {
	configFile string
	watcher    *fsnotify.Watcher
	stop       chan struct{}
	onReload   func(*Config)
}

// NewWatcher creates a watcher for the given config file. onReload receives
// the freshly parsed config after every successful reload.
func NewWatcher(configFile string, onReload func(*Config)) *Watcher {
	return &Watcher{
		configFile: configFile,
		stop:       make(chan struct{}),
		onReload:   onReload,
	}
}

// Start begins watching the config file's directory for changes.
// Editors typically replace files via rename, so the directory is watched
// rather than the file itself.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	if err = w.watcher.Add(filepath.Dir(w.configFile)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.configFile) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					log.Infof("Config file changed (%s), reloading...", event.Name)
					time.Sleep(100 * time.Millisecond)
					cfg, errLoad := LoadConfig(w.configFile)
					if errLoad != nil {
						log.Errorf("Failed to reload config: %v", errLoad)
						continue
					}
					if w.onReload != nil {
						w.onReload(cfg)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("Config watcher error: %v", err)
			case <-w.stop:
				return
			}
		}
	}()

	return nil
}

// Stop stops the file watcher.
func (w *Watcher) Stop() {
	if w.watcher != nil {
		select {
		case <-w.stop:
		default:
			close(w.stop)
		}
		w.watcher.Close()
	}
}
