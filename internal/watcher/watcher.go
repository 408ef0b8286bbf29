// Package watcher reports repository changes that can alter the diff being
// displayed, so the viewer can reload without the user pressing a key.
//
// Watched paths:
//   - .git itself       → index updates, HEAD moves, merges
//   - .git/refs/heads   → commits on local branches
//   - .git/refs/remotes → fetches that move the default branch
//   - the working tree  → file edits, one watch per directory
//
// Working-tree directories are added non-recursively (fsnotify has no
// recursive mode on Linux) and capped at maxTreeDirs so huge repositories do
// not exhaust inotify watches. Directories created later are picked up as
// they appear.
package watcher

import (
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// maxTreeDirs bounds the number of working-tree directories watched.
const maxTreeDirs = 4096

// skipDirs are working-tree directories never worth watching.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".idea":        true,
	".vscode":      true,
}

// Event is sent when the watcher detects a relevant change.
type Event struct{}

// Watch monitors repoRoot and gitDir and sends an Event on the returned
// channel after each burst of changes settles for debounce. Only one pending
// Event is buffered; a slow consumer sees bursts coalesced.
//
// gitDir should be the absolute path to the .git directory (handles worktrees
// where .git is a file pointing elsewhere).
//
// Call the returned stop function to tear down the watcher.
func Watch(repoRoot, gitDir string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	for _, t := range gitTargets(gitDir) {
		if err := w.Add(t); err != nil {
			// Non-fatal: some dirs may not exist yet.
			log.Printf("watcher: %s: %v", t, err)
		}
	}
	if repoRoot != "" {
		addTree(w, repoRoot, gitDir)
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter keeps several instances on one repository from reloading in
	// lockstep.
	jitterRange := int64(debounce / 2)

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if shouldIgnore(ev.Name) {
					continue
				}
				if ev.Has(fsnotify.Create) && repoRoot != "" && isTreeDir(ev.Name, gitDir) {
					addTree(w, ev.Name, gitDir)
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(jitterRange))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("watcher: %v", err)
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// gitTargets lists the existing directories inside gitDir to watch.
func gitTargets(gitDir string) []string {
	candidates := []string{
		gitDir,
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "remotes"),
	}
	// One level deep for per-remote dirs (e.g., refs/remotes/origin).
	if entries, err := os.ReadDir(filepath.Join(gitDir, "refs", "remotes")); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				candidates = append(candidates, filepath.Join(gitDir, "refs", "remotes", e.Name()))
			}
		}
	}

	var out []string
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			out = append(out, c)
		}
	}
	return out
}

// addTree watches root and its subdirectories until the watch list holds
// maxTreeDirs entries.
func addTree(w *fsnotify.Watcher, root, gitDir string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) || path == gitDir {
			return filepath.SkipDir
		}
		if len(w.WatchList()) >= maxTreeDirs {
			return filepath.SkipAll
		}
		if err := w.Add(path); err != nil {
			log.Printf("watcher: %s: %v", path, err)
		}
		return nil
	})
}

func skipDir(name string) bool {
	return skipDirs[name]
}

// isTreeDir reports whether path is a working-tree directory that should be
// watched.
func isTreeDir(path, gitDir string) bool {
	if path == gitDir || strings.HasPrefix(path, gitDir+string(filepath.Separator)) {
		return false
	}
	if skipDir(filepath.Base(path)) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore returns true for events that should not trigger a refresh.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Git lock files are transient and held while git itself runs; reloading
	// on them would race the command that took the lock.
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	// Editor swap/temp files.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "4913") {
		return true
	}

	// Typing a commit message changes nothing in the diff.
	if base == "COMMIT_EDITMSG" {
		return true
	}

	// gc.log, fsmonitor, hooks are noise.
	if base == "gc.log" || strings.HasPrefix(base, "fsmonitor") {
		return true
	}

	return false
}
