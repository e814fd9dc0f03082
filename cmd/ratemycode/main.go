package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	app "github.com/bryanwahyu/ratemycode/internal/application/analysis"
	"github.com/bryanwahyu/ratemycode/internal/config"
	domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
	"github.com/bryanwahyu/ratemycode/internal/domain/history"
	aiopenai "github.com/bryanwahyu/ratemycode/internal/infra/ai/openai"
	mysqldb "github.com/bryanwahyu/ratemycode/internal/infra/db/mysql"
	postgresdb "github.com/bryanwahyu/ratemycode/internal/infra/db/postgres"
	sqlitedb "github.com/bryanwahyu/ratemycode/internal/infra/db/sqlite"
	"github.com/bryanwahyu/ratemycode/internal/infra/httpserver"
	"github.com/bryanwahyu/ratemycode/internal/infra/render"
	minioStore "github.com/bryanwahyu/ratemycode/internal/infra/storage"
	"github.com/bryanwahyu/ratemycode/internal/infra/tts"
	"github.com/bryanwahyu/ratemycode/internal/infra/watcher"
)

func main() {
	// directory yang dipantau; default current dir
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	// load config (path bisa dioverride lewat env)
	cfg, err := config.Load(os.Getenv("RATEMYCODE_CONFIG"))
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	persona := domain.ParsePersona(cfg.Persona)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// connect history store
	db, repo, err := openHistory(ctx, cfg)
	if err != nil {
		log.Fatalf("history store error: %v", err)
	}
	defer db.Close()

	// init reviewer (jalur remote cuma aktif kalau ada API key)
	var reviewer domain.Reviewer
	if cfg.APIKey != "" {
		reviewer = aiopenai.NewClient(cfg.APIKey, cfg.Model, string(persona))
	}

	// init archive store
	var archive domain.ArchiveStore
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Printf("archive init error (continuing without archive): %v", err)
		} else {
			archive = store
		}
	}

	// init service
	svc := &app.Service{
		Reviewer: reviewer,
		History:  repo,
		Archive:  archive,
		Speaker:  tts.New(),
		Renderer: render.NewConsole(cfg.MaxComplexity),
		Clock:    app.SystemClock{},
		Opts: app.Options{
			PenaltyPerLevel: cfg.PenaltyPerLevel,
			RemoteTimeout:   time.Duration(cfg.RemoteTimeoutSeconds) * time.Second,
			SpeakThreshold:  cfg.SpeakThreshold,
			VoiceEnabled:    cfg.VoiceEnabled,
		},
	}

	// init watcher
	w, err := watcher.New(root, watcher.Config{
		Extensions: cfg.SupportedExtensions,
		Debounce:   time.Duration(cfg.DebounceMS) * time.Millisecond,
		Settle:     time.Duration(cfg.SettleMS) * time.Millisecond,
		Persona:    persona,
		APIKey:     cfg.APIKey,
	}, func(ctx context.Context, req domain.AnalysisRequest) {
		svc.Process(ctx, req)
	})
	if err != nil {
		log.Fatalf("watcher error: %v", err)
	}

	watchDone := make(chan error, 1)
	go func() { watchDone <- w.Run(ctx) }()

	// local history API, optional
	var srv *http.Server
	if cfg.Server.Enabled {
		mux := httpserver.NewRouter(svc, db, httpserver.Options{
			WatchRoot: mustAbs(root),
			Persona:   persona,
			APIKey:    cfg.APIKey,
		})
		srv = &http.Server{
			Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Printf("history API listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("server error: %v", err)
			}
		}()
	}

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")
	cancel()

	if srv != nil {
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		if err := srv.Shutdown(ctx2); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
	<-watchDone
}

// openHistory picks the history backend from config. sqlite is the default
// and needs no setup; mysql/postgres are for teams sharing one store.
func openHistory(ctx context.Context, cfg *config.Config) (*sql.DB, history.Repository, error) {
	switch cfg.Database.Driver {
	case "", "sqlite":
		db, err := sqlitedb.Connect(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return db, sqlitedb.NewHistoryRepository(db), nil
	case "mysql":
		db, err := mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, mysqldb.NewHistoryRepository(db), nil
	case "postgres":
		db, err := postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, postgresdb.NewHistoryRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

func mustAbs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
