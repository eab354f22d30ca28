package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	staticcontent "warped/internal/adapter/content/static"
	httpadapter "warped/internal/adapter/http"
	metricsinmem "warped/internal/adapter/metrics/inmemory"
	gormrepo "warped/internal/adapter/repo/gorm"
	memoryrepo "warped/internal/adapter/repo/memory"
	"warped/internal/adapter/ws"
	"warped/internal/app/command"
	"warped/internal/app/ports"
	"warped/internal/app/replay"
	"warped/internal/app/savegame"
	"warped/internal/app/session"
	"warped/internal/app/status"
	"warped/internal/config"
	"warped/internal/domain/sim"
	"warped/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configDir := flag.String("config", "", "directory containing warped.yaml or warped.json")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(logging.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("bye")
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	tables, err := contentProvider(cfg.Content.Path).Tables(ctx)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	kpi := metricsinmem.NewRecorder()
	saves := savegame.UseCase{
		Store:   store,
		Slot:    cfg.Store.Slot,
		Metrics: kpi,
		Log:     log.With().Str("component", "savegame").Logger(),
	}
	clock := sim.SystemClock{}
	game := sim.NewGame(tables,
		sim.WithClock(clock),
		sim.WithRand(newRand(cfg.Sim.Seed)),
		sim.WithDiagnostics(logging.NewDiagnostics(log)),
		sim.WithMaxStep(cfg.Sim.MaxStep),
		sim.WithAutosave(cfg.Sim.AutosaveInterval, saves.Autosave(ctx, clock)),
	)
	if saves.Load(ctx, game) {
		log.Info().Str("slot", cfg.Store.Slot).Msg("save restored")
	}

	hub := ws.NewHub(log)
	game.Subscribe(hub.Observer(game, cfg.WS.PushInterval))

	sess := session.New(game, session.Config{
		TickInterval: cfg.Sim.TickInterval,
		Clock:        clock,
		OnStop: func(ctx context.Context, g *sim.Game) {
			_ = saves.Save(ctx, g)
		},
	}, log)

	h := httpadapter.Handler{
		CommandUC: command.UseCase{Session: sess, Saves: saves, Metrics: kpi, Debug: cfg.Sim.DebugCommands},
		StatusUC:  status.UseCase{Session: sess},
		ReplayUC:  replay.UseCase{Session: sess},
		KPI:       kpi,
		Logger:    log.With().Str("component", "http").Logger(),
	}
	hz := server.Default(
		server.WithHostPorts(cfg.HTTP.Addr),
		server.WithExitWaitTime(shutdownTimeout),
	)
	hz.Use(
		httpadapter.RequestIDMiddleware(),
		httpadapter.CORSMiddleware(cfg.HTTP.CORSOrigins...),
		httpadapter.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.Burst).Middleware(),
	)
	h.RegisterRoutes(hz)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	wsSrv := &http.Server{Addr: cfg.WS.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sess.Run(gctx) })
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("http listening")
		if err := hz.Run(); err != nil && gctx.Err() == nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.WS.Addr).Msg("websocket listening")
		if err := wsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("websocket server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(hz.Shutdown(shutdownCtx), wsSrv.Shutdown(shutdownCtx))
	})
	return g.Wait()
}

func contentProvider(path string) staticcontent.Provider {
	if path == "" {
		return staticcontent.Provider{}
	}
	return staticcontent.Provider{Root: filepath.Dir(path), File: filepath.Base(path)}
}

func openStore(ctx context.Context, cfg config.StoreConfig) (ports.SnapshotStore, func(), error) {
	if cfg.Type == config.StoreMemory {
		return memoryrepo.NewSnapshotRepo(memoryrepo.NewStore()), func() {}, nil
	}

	open := gormrepo.OpenSQLite
	if cfg.Type == config.StorePostgres {
		open = gormrepo.OpenPostgres
	}
	db, err := open(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if err := gormrepo.ApplyMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate %s: %w", cfg.Type, err)
	}
	return gormrepo.NewSnapshotRepo(db), func() { _ = sqlDB.Close() }, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
