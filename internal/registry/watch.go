package registry

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"hilite/internal/trace"
)

// WatchDebounce is how long a file must stay quiet before it is reloaded.
const WatchDebounce = 100 * time.Millisecond

// Reload describes the outcome of one hot reload.
type Reload struct {
	Path     string
	IDs      []string // ids registered from Path after the reload
	Removed  []string // ids that disappeared with the file or its contents
	Restored []string // built-in ids registered again once the file stopped shadowing them
	Err      error    // set when the file was rejected; previous definitions stay
}

// Watch reloads definition files under dir when they change. Changed files
// are decoded again and swap in their definitions; a file that fails to
// decode or compile is reported and leaves the previous definitions in
// place. Deleted files unregister what they had provided, and built-ins they
// had shadowed are registered again.
//
// The returned channel receives one Reload per processed file and is closed
// once ctx is done.
func (r *Registry) Watch(ctx context.Context, dir string) (<-chan Reload, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	out := make(chan Reload, 8)
	go r.watchLoop(ctx, fsw, out)
	return out, nil
}

func (r *Registry) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Reload) {
	defer close(out)
	defer fsw.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(WatchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				// новые подкаталоги тоже отслеживаем
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = fsw.Add(ev.Name)
					continue
				}
			}
			if !IsDefinitionFile(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(WatchDebounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			for _, p := range paths {
				res := r.reload(p)
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			trace.Error(r.tracer, trace.ScopeRegistry, "watch", err)
		}
	}
}

func (res *Reload) drop(id string, restored bool) {
	if restored {
		res.Restored = append(res.Restored, id)
	} else {
		res.Removed = append(res.Removed, id)
	}
}

// reload re-reads one file and reconciles the ids it provides.
func (r *Registry) reload(path string) Reload {
	res := Reload{Path: path}
	before := r.idsFrom(path)

	if _, err := os.Stat(path); err != nil {
		for _, id := range before {
			res.drop(id, r.release(id))
		}
		trace.Point(r.tracer, trace.ScopeRegistry, "unload", path)
		return res
	}

	specs, err := decodeFile(path)
	if err != nil {
		res.Err = err
		res.IDs = before
		trace.Error(r.tracer, trace.ScopeRegistry, "reload", err)
		return res
	}
	// файл целиком либо принимается, либо нет
	for _, spec := range specs {
		if _, err := r.check(spec, path); err != nil {
			res.Err = err
			res.IDs = before
			trace.Error(r.tracer, trace.ScopeRegistry, "reload", err)
			return res
		}
	}
	ids, err := r.registerAll(path, specs)
	res.IDs = ids
	res.Err = err
	for _, id := range before {
		if !slices.Contains(ids, id) {
			res.drop(id, r.release(id))
		}
	}
	trace.Point(r.tracer, trace.ScopeRegistry, "reload", path)
	return res
}

func (r *Registry) idsFrom(origin string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, o := range r.origins {
		if o == origin {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
