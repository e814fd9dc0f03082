package watcher

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
)

// Handler receives one AnalysisRequest per settled file change. It runs on
// its own goroutine so a slow remote review never blocks event intake.
type Handler func(ctx context.Context, req domain.AnalysisRequest)

// Config immutable, diisi dari config file saat wiring
type Config struct {
	Extensions []string
	Debounce   time.Duration
	Settle     time.Duration
	Persona    domain.Persona
	APIKey     string
}

const (
	defaultDebounce = 1 * time.Second
	defaultSettle   = 200 * time.Millisecond
)

// skipDirs are never watched; nothing good comes from scoring vendored code.
var skipDirs = map[string]bool{
	"node_modules": true, "vendor": true, "__pycache__": true, "target": true,
}

// Watcher pantau satu directory tree dan dispatch event per file change.
type Watcher struct {
	fw     *fsnotify.Watcher
	root   string
	cfg    Config
	handle Handler
	exts   map[string]bool

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// New registers the root and all eligible subdirectories.
func New(root string, cfg Config, handle Handler) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fw:       fw,
		root:     abs,
		cfg:      cfg,
		handle:   handle,
		exts:     make(map[string]bool),
		lastSeen: make(map[string]time.Time),
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.exts[strings.ToLower(ext)] = true
	}

	if err := w.addTree(abs); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep going
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if path != root && (strings.HasPrefix(base, ".") || skipDirs[base]) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// Run blocks until ctx is cancelled, dispatching debounced events.
func (w *Watcher) Run(ctx context.Context) error {
	log.Printf("ratemycode: watching %s", w.root)
	for {
		select {
		case <-ctx.Done():
			return w.fw.Close()
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.onEvent(ctx, event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("ratemycode: watch error: %v", err)
		}
	}
}

func (w *Watcher) onEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	// baru bikin folder? daftarkan juga
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			_ = w.addTree(event.Name)
		}
		return
	}

	if !w.shouldAnalyze(event.Name) || !w.debounce(event.Name) {
		return
	}

	log.Printf("ratemycode: detected change in %s", event.Name)
	go w.dispatch(ctx, event.Name)
}

// shouldAnalyze gates by filename before the core ever sees the event:
// dotfiles, editor temp files and unsupported extensions never get scored.
func (w *Watcher) shouldAnalyze(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, "~") {
		return false
	}
	return w.exts[strings.ToLower(filepath.Ext(base))]
}

// debounce: satu save editor bisa menghasilkan beberapa event beruntun
func (w *Watcher) debounce(path string) bool {
	interval := w.cfg.Debounce
	if interval <= 0 {
		interval = defaultDebounce
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if last, ok := w.lastSeen[path]; ok && now.Sub(last) < interval {
		return false
	}
	w.lastSeen[path] = now
	return true
}

// dispatch waits for the write to settle, reads the file once and hands the
// request to the orchestrator.
func (w *Watcher) dispatch(ctx context.Context, path string) {
	settle := w.cfg.Settle
	if settle <= 0 {
		settle = defaultSettle
	}
	select {
	case <-ctx.Done():
		return
	case <-time.After(settle):
	}

	source, err := os.ReadFile(path)
	if err != nil {
		log.Printf("ratemycode: read %s: %v", path, err)
		return
	}

	w.handle(ctx, domain.AnalysisRequest{
		FilePath:   path,
		SourceText: string(source),
		Language:   domain.LanguageForPath(path),
		Persona:    w.cfg.Persona,
		APIKey:     w.cfg.APIKey,
	})
}
