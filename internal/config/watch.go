package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long the file must stay quiet before it is reloaded, so an
// editor save burst (truncate+write+rename) yields one reload of the final file.
const debounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
// The directory is watched rather than the file so editors that replace the file
// on save keep being tracked.
type Watcher struct {
	watcher *fsnotify.Watcher
	variant string
	path    string
	preset  DifficultyPreset
	Configs chan DoodleConfig
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewWatcher starts watching path and decoding it as a config of variant.
// preset is applied to every reloaded config, as it was to the initial one.
func NewWatcher(variant, path string, preset DifficultyPreset) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		variant: variant,
		path:    abs,
		preset:  preset,
		Configs: make(chan DoodleConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	watcher.wg.Add(1)
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
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
			cfg, err := w.reload()
			if err != nil {
				w.sendErr(err)
				continue
			}
			w.sendConfig(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

// reload reads the watched file. An empty file is an error rather than the
// defaults, since it usually means a save is still in progress.
func (w *Watcher) reload() (DoodleConfig, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return DoodleConfig{}, fmt.Errorf("failed to read config %s: %w", w.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return DoodleConfig{}, fmt.Errorf("config %s is empty", w.path)
	}
	cfg, err := Decode(w.variant, data, filepath.Ext(w.path))
	if err != nil {
		return DoodleConfig{}, fmt.Errorf("failed to parse config %s: %w", w.path, err)
	}
	ApplyPreset(&cfg, w.preset)
	return cfg, nil
}

// sendConfig replaces any unconsumed config with the newest one.
func (w *Watcher) sendConfig(cfg DoodleConfig) {
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
