package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// prefs is the full contents of the durable preferences document. The goal
// collection stays a JSON text document under a single key; the remaining
// keys are simple scalars. Minute pointers distinguish "never set" from 0.
type prefs struct {
	GoalsJSON      string `yaml:"goals_json,omitempty"`
	ActiveStartMin *int   `yaml:"active_start_min,omitempty"`
	ActiveEndMin   *int   `yaml:"active_end_min,omitempty"`
	ThemeMode      string `yaml:"theme_mode,omitempty"`
}

// docFile owns the on-disk preferences document. All access goes through
// load/edit, which serialize read-modify-write cycles under one mutex so
// every transaction sees the prior one's committed result.
type docFile struct {
	path string

	mu       sync.Mutex // held across each load-mutate-write cycle
	lastData []byte     // bytes of the last committed document

	subMu   sync.Mutex
	subs    map[int]chan prefs
	nextSub int
}

func newDocFile(path string) (*docFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &docFile{
		path: path,
		subs: make(map[int]chan prefs),
	}, nil
}

// read parses the current document. A missing file is an empty document.
func (d *docFile) read() (prefs, []byte, error) {
	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		return prefs{}, nil, nil
	}
	if err != nil {
		return prefs{}, nil, fmt.Errorf("reading %s: %w", d.path, err)
	}
	var p prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return prefs{}, nil, fmt.Errorf("parsing %s: %w", d.path, err)
	}
	return p, data, nil
}

// load returns the current document contents.
func (d *docFile) load() (prefs, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, data, err := d.read()
	if err == nil {
		d.lastData = data
	}
	return p, err
}

// edit runs fn as one atomic transaction. If fn returns an error nothing is
// written and the error is passed through. If the resulting document is
// byte-identical to the stored one the write is skipped entirely, so no-op
// mutations leave the file untouched.
func (d *docFile) edit(fn func(p *prefs) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, oldData, err := d.read()
	if err != nil {
		return err
	}
	if err := fn(&p); err != nil {
		return err
	}

	newData, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", d.path, err)
	}
	if bytes.Equal(newData, oldData) {
		return nil
	}
	if err := d.writeAtomic(newData); err != nil {
		return err
	}
	d.lastData = newData
	d.broadcast(p)
	return nil
}

// writeAtomic writes via a temp file and rename so a crash mid-write never
// leaves a partial document behind.
func (d *docFile) writeAtomic(data []byte) error {
	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".checkin-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing document: %w", err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("committing document: %w", err)
	}
	return nil
}

// subscribe registers a live-stream subscriber. Each subscriber channel
// holds one pending snapshot: a slow consumer has intermediate states
// coalesced to the latest, never reordered.
func (d *docFile) subscribe() (int, <-chan prefs) {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	id := d.nextSub
	d.nextSub++
	ch := make(chan prefs, 1)
	d.subs[id] = ch
	return id, ch
}

func (d *docFile) unsubscribe(id int) {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	if ch, ok := d.subs[id]; ok {
		delete(d.subs, id)
		close(ch)
	}
}

func (d *docFile) broadcast(p prefs) {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	for _, ch := range d.subs {
		select {
		case ch <- p:
		default:
			// Drop the stale pending snapshot and replace it.
			select {
			case <-ch:
			default:
			}
			ch <- p
		}
	}
}

// watchExternal follows on-disk changes made by another process and folds
// them into the broadcast stream. Events are debounced, and reloads that
// match the last committed bytes are ignored so our own writes don't echo.
func (d *docFile) watchExternal(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(d.path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		var debounce *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != d.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(200*time.Millisecond, func() {
					d.reloadIfChanged()
				})

			case <-watcher.Errors:
				// Ignore watcher errors silently.

			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (d *docFile) reloadIfChanged() {
	d.mu.Lock()
	p, data, err := d.read()
	if err != nil || bytes.Equal(data, d.lastData) {
		d.mu.Unlock()
		return
	}
	d.lastData = data
	d.mu.Unlock()
	d.broadcast(p)
}
