package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/akyairhashvil/sprintsync/internal/config"
	"github.com/akyairhashvil/sprintsync/internal/httpapi"
	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/report"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/akyairhashvil/sprintsync/internal/storage/cloud"
	"github.com/akyairhashvil/sprintsync/internal/storage/guest"
	"github.com/akyairhashvil/sprintsync/internal/storage/local"
	"github.com/akyairhashvil/sprintsync/internal/store"
	syncer "github.com/akyairhashvil/sprintsync/internal/sync"
	"github.com/akyairhashvil/sprintsync/internal/tui"
	"github.com/akyairhashvil/sprintsync/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

const deviceUserFile = "user_id"

func main() {
	configFile := flag.String("config", "", "path to a sprintsync.yaml config file")
	envFile := flag.String("env", "", "path to a .env file")
	userFlag := flag.String("user", "", "user id; guest_ and local_ ids stay on this device")
	flag.Parse()

	if err := run(*configFile, *envFile, *userFlag); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, envFile, userFlag string) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		return err
	}
	logCloser, err := util.SetupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { util.LogError(nil, "close backends", a.Close()) }()

	userID, err := resolveUserID(cfg, userFlag)
	if err != nil {
		return err
	}
	user := identity.NewUser(userID)
	log.Printf("starting for %s (%s), backends %v", user.ID, user.Kind, a.router.Kinds())

	util.LogError(nil, "restore navigation", a.nav.Restore(ctx))
	defer func() { util.LogError(nil, "flush navigation", a.nav.Flush(context.Background())) }()

	if cfg.HTTPAddr != "" {
		go func() {
			opts := httpapi.ServerOptions{Addr: cfg.HTTPAddr, Gatherer: a.registry, Logger: util.NewLogger("http: ")}
			util.LogError(nil, "http server", httpapi.Serve(ctx, opts, nil))
		}()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := a.orch.HandleAuthChange(ctx, user); err != nil {
			return err
		}
		fmt.Print(report.Summary(a.sprints.Active(), a.sprints.Sprints(), a.tasks.Tasks(), a.progress.Progress()))
		return nil
	}

	tui.SetTheme(cfg.Theme)
	model := tui.NewMainModel(tui.Deps{
		Ctx:        ctx,
		User:       user,
		Sprints:    a.sprints,
		Tasks:      a.tasks,
		Progress:   a.progress,
		App:        a.nav,
		Sync:       a.orch,
		ReportsDir: util.ReportsDir(config.AppName),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// app is the wired object graph.
type app struct {
	router   *storage.Router
	local    *local.Store
	registry *prometheus.Registry
	sprints  *store.SprintStore
	tasks    *store.TaskStore
	progress *store.ProgressStore
	nav      *store.AppStore
	orch     *syncer.Orchestrator
}

func (a *app) Close() error {
	return a.router.Close()
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	guestStore, err := guest.Open(ctx, cfg.GuestDBPath(), guest.WithLogger(util.NewLogger("guest: ")))
	if err != nil {
		return nil, fmt.Errorf("open guest store: %w", err)
	}
	localStore := local.New(afero.NewOsFs(), cfg.LocalRoot(), local.WithLogger(util.NewLogger("local: ")))
	backends := []storage.Backend{guestStore, localStore}

	if cfg.CloudDSN != "" {
		cloudStore, err := cloud.Open(ctx, cfg.CloudDSN, cloud.WithLogger(util.NewLogger("cloud: ")))
		if err != nil {
			_ = guestStore.Close()
			return nil, fmt.Errorf("open cloud store: %w", err)
		}
		backends = append(backends, cloudStore)
	}
	router := storage.NewRouter(identity.PrefixResolver{}, backends...)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := store.NewMetrics(registry)

	sprints := store.NewSprintStore(router, store.WithLogger(util.NewLogger("sprints: ")), store.WithMetrics(metrics))
	tasks := store.NewTaskStore(router, store.WithLogger(util.NewLogger("tasks: ")), store.WithMetrics(metrics))
	progress := store.NewProgressStore(router, sprints, store.WithLogger(util.NewLogger("progress: ")), store.WithMetrics(metrics))
	orch := syncer.New(sprints, tasks, progress,
		syncer.WithLogger(util.NewLogger("sync: ")),
		syncer.WithRefreshThreshold(cfg.RefreshInterval),
	)
	nav := store.NewAppStore(
		store.WithNavSink(localStore),
		store.WithRouteCacheTTL(cfg.RouteCacheTTL),
		store.WithHistoryLimit(cfg.HistoryLimit),
		store.WithPersistDebounce(cfg.PersistDebounce),
		store.WithAppLogger(util.NewLogger("app: ")),
	)
	return &app{
		router:   router,
		local:    localStore,
		registry: registry,
		sprints:  sprints,
		tasks:    tasks,
		progress: progress,
		nav:      nav,
		orch:     orch,
	}, nil
}

// resolveUserID picks the flag, then the configured id, then the id minted
// for this device on first run.
func resolveUserID(cfg *config.Config, flagValue string) (string, error) {
	if id := strings.TrimSpace(flagValue); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(cfg.UserID); id != "" {
		return id, nil
	}
	path := filepath.Join(cfg.DataDir, deviceUserFile)
	raw, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	id := identity.NewGuestID()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	return id, nil
}
