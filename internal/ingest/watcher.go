// Package ingest watches drop directories for resume archives so the batch
// CLI can process them as they arrive.
package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/joseph-ayodele/resume-analyzer/constants"
)

type WatchConfig struct {
	Roots       []string      // directories to watch (recursive)
	InitialScan bool          // if true, walk roots and emit existing archives
	Debounce    time.Duration // coalesce rapid write bursts while a zip is copied in
}

// StartWatcher begins watching the configured roots for zip archives and
// returns a channel of archive paths plus a channel of watcher errors. Both
// channels close when ctx is cancelled.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		slog.Error("watcher start failed: no roots provided")
		return nil, nil, errors.New("no roots provided")
	}
	evCh := make(chan string, 64)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}

	// Add roots recursively
	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && isArchive(path) {
				select {
				case evCh <- path:
				default:
				}
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addDir(r); err != nil {
			slog.Error("failed to add root directory", "root", r, "error", err)
			_ = w.Close()
			return nil, nil, err
		}
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer func() {
			_ = w.Close()
		}()

		pending := map[string]struct{}{}
		var settle *time.Timer
		var settled <-chan time.Time

		sendPending := func() {
			for p := range pending {
				select {
				case evCh <- p:
				default:
				}
				delete(pending, p)
			}
		}

		// The settle timer is received in this loop, never in a callback, so
		// pending stays confined to this goroutine.
		for {
			select {
			case <-ctx.Done():
				return
			case <-settled:
				settled = nil
				sendPending()
			case e := <-w.Events:
				// Newly created directories need their own watch.
				if e.Op&fsnotify.Create == fsnotify.Create {
					tryAddDir(w, e.Name)
				}

				if isArchive(e.Name) && (e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename)) != 0 {
					pending[e.Name] = struct{}{}
					if cfg.Debounce <= 0 {
						sendPending()
						continue
					}
					if settle == nil {
						settle = time.NewTimer(cfg.Debounce)
					} else {
						// Stop then drain before Reset; the timer may have
						// fired already.
						if !settle.Stop() {
							select {
							case <-settle.C:
							default:
							}
						}
						settle.Reset(cfg.Debounce)
					}
					settled = settle.C
				}
			case err := <-w.Errors:
				slog.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

func isArchive(path string) bool {
	return constants.ExtOf(path) == constants.ArchiveExtension
}

// tryAddDir is best-effort: Add fails for plain files and we do not care.
func tryAddDir(w *fsnotify.Watcher, path string) {
	_ = w.Add(path)
}
