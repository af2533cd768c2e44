package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hylla/fardplan/internal/adapters/server"
	"github.com/hylla/fardplan/internal/adapters/storage/cache"
	"github.com/hylla/fardplan/internal/adapters/storage/sqlite"
	"github.com/hylla/fardplan/internal/board"
	"github.com/hylla/fardplan/internal/config"
	"github.com/hylla/fardplan/internal/domain"
	"github.com/hylla/fardplan/internal/platform"
	"github.com/hylla/fardplan/internal/render"
)

// version stores a package-level helper value.
var version = "dev"

// main handles main.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("fardplan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		dbPath     string
		appName    string
		devMode    bool
		showVer    bool
	)
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("FARDPLAN_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("FARDPLAN_APP_NAME")); envApp != "" {
		appName = envApp
	} else {
		appName = "fardplan"
	}
	fs.StringVar(&configPath, "config", "", "path to config TOML")
	fs.StringVar(&dbPath, "db", "", "path to sqlite database")
	fs.StringVar(&appName, "app", appName, "application name for config/data path resolution")
	fs.BoolVar(&devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")
	fs.BoolVar(&showVer, "version", false, "show version")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVer {
		_, _ = fmt.Fprintf(stdout, "fardplan %s\n", version)
		return nil
	}

	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: appName,
		DevMode: devMode,
	})
	if err != nil {
		return err
	}

	command := firstArg(fs.Args())
	switch command {
	case "paths":
		_, _ = fmt.Fprintf(stdout, "app: %s\n", appName)
		_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", devMode)
		_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
		_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
		_, _ = fmt.Fprintf(stdout, "db: %s\n", paths.DBPath)
		_, _ = fmt.Fprintf(stdout, "cache: %s\n", paths.CachePath)
		return nil
	case "", "serve", "board", "show", "export", "import":
		// Continue.
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	if command == "" {
		command = "board"
	}

	dbOverridden := strings.TrimSpace(dbPath) != ""
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("FARDPLAN_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("FARDPLAN_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	if err := config.EnsureConfigDir(configPath); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg, err := config.Load(configPath, config.Default(dbPath, paths.CachePath))
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}
	if envBind := strings.TrimSpace(os.Getenv("FARDPLAN_BIND")); envBind != "" {
		cfg.Server.Bind = envBind
	}

	logger := charmLog.NewWithOptions(stderr, charmLog.Options{
		ReportTimestamp: true,
		Prefix:          appName,
	})
	if devMode {
		logger.SetLevel(charmLog.DebugLevel)
	}
	logger.Debug("startup configuration resolved", "command", command, "config_path", configPath, "db_path", cfg.Database.Path)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	repo, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open sqlite repository: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Warn("sqlite close failed", "db_path", cfg.Database.Path, "err", closeErr)
		}
	}()

	var fileCache *cache.FileCache
	if strings.TrimSpace(cfg.Cache.Path) != "" {
		fileCache, err = cache.New(cfg.Cache.Path, logger)
		if err != nil {
			logger.Warn("cache unavailable", "path", cfg.Cache.Path, "err", err)
			fileCache = nil
		}
	}

	store := board.NewStore(uuid.NewString, time.Now, board.StoreConfig{
		DefaultTitle: cfg.Board.DefaultTitle,
	})
	if err := store.Initialize(ctx, fallbackLoader{primary: repo, cache: fileCache}); err != nil {
		return fmt.Errorf("load board document: %w", err)
	}
	if fileCache != nil {
		store.OnChange(fileCache.Write)
	}

	view := board.NewViewState()
	view.SetEditMode(!cfg.Server.ReadOnly)

	rest := fs.Args()
	if len(rest) > 0 {
		rest = rest[1:]
	}
	switch command {
	case "serve":
		return runServe(ctx, cfg, store, view, repo, logger)
	case "board":
		return runBoard(store, view, rest, stdout)
	case "show":
		return runShow(store, rest, stdout)
	case "export":
		return runExport(store, rest, stdout)
	case "import":
		return runImport(ctx, store, repo, rest)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// fallbackLoader loads the persisted document, falling back to the
// crash-recovery cache when the database holds no board yet.
type fallbackLoader struct {
	primary board.Loader
	cache   *cache.FileCache
}

func (l fallbackLoader) LoadDocument(ctx context.Context) (domain.Document, bool, error) {
	doc, ok, err := l.primary.LoadDocument(ctx)
	if err != nil || ok {
		return doc, ok, err
	}
	if l.cache != nil {
		if cached, found := l.cache.Read(); found {
			return cached, true, nil
		}
	}
	return domain.Document{}, false, nil
}

// runServe runs the HTTP server flow with debounced persistence.
func runServe(ctx context.Context, cfg config.Config, store *board.Store, view *board.ViewState, repo *sqlite.Repository, logger *charmLog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	autosaver := board.NewAutosaver(repo, logger, cfg.QuietWindow())
	store.OnChange(autosaver.Notify)
	go autosaver.Run(ctx)

	logger.Info("starting http server", "bind", cfg.Server.Bind, "api_endpoint", cfg.Server.APIEndpoint, "read_only", cfg.Server.ReadOnly)
	return server.Run(ctx, server.Config{
		HTTPBind:    cfg.Server.Bind,
		APIEndpoint: cfg.Server.APIEndpoint,
	}, server.Dependencies{
		Store:     store,
		View:      view,
		Autosaver: autosaver,
	})
}

// runBoard renders the filtered board to the terminal.
func runBoard(store *board.Store, view *board.ViewState, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fardplan board", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		laneFilter    string
		stageFilter   string
		typeFilter    string
		search        string
		hideCompleted bool
	)
	fs.StringVar(&laneFilter, "lane", "", "comma-separated swimlane ids to show")
	fs.StringVar(&stageFilter, "stage", "", "comma-separated stages to show")
	fs.StringVar(&typeFilter, "type", "", "comma-separated item types to show")
	fs.StringVar(&search, "q", "", "substring search over title and description")
	fs.BoolVar(&hideCompleted, "hide-completed", false, "hide completed items")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse board flags: %w", err)
	}

	filters := view.Filters()
	if laneFilter != "" {
		filters.Swimlanes = splitList(laneFilter)
	}
	for _, raw := range splitList(stageFilter) {
		stage, ok := domain.NormalizeStage(domain.Stage(raw))
		if !ok {
			return fmt.Errorf("unknown stage: %s", raw)
		}
		filters.Stages = append(filters.Stages, stage)
	}
	for _, raw := range splitList(typeFilter) {
		itemType, ok := domain.NormalizeItemType(domain.ItemType(raw))
		if !ok {
			return fmt.Errorf("unknown item type: %s", raw)
		}
		filters.Types = append(filters.Types, itemType)
	}
	filters.Search = search
	filters.ShowCompleted = !hideCompleted

	doc, ok := store.Document()
	if !ok {
		return fmt.Errorf("no board document loaded")
	}
	_, _ = fmt.Fprintln(stdout, render.Board(doc, filters))
	return nil
}

// runShow renders one item's detail view.
func runShow(store *board.Store, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fardplan show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var width int
	fs.IntVar(&width, "width", 80, "wrap width for markdown rendering")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse show flags: %w", err)
	}
	ref := firstArg(fs.Args())
	if ref == "" {
		return fmt.Errorf("usage: fardplan show <item-id-or-title>")
	}

	doc, ok := store.Document()
	if !ok {
		return fmt.Errorf("no board document loaded")
	}
	item, ok := findItem(doc, ref)
	if !ok {
		return fmt.Errorf("item not found: %s", ref)
	}
	_, _ = fmt.Fprintln(stdout, render.ItemDetail(doc, item, &render.MarkdownRenderer{}, width))
	return nil
}

// findItem resolves an item by id first, then by exact title match.
func findItem(doc domain.Document, ref string) (domain.RoadmapItem, bool) {
	if item, ok := doc.Item(ref); ok {
		return item, true
	}
	for _, item := range doc.Items {
		if strings.EqualFold(item.Title, ref) {
			return item, true
		}
	}
	return domain.RoadmapItem{}, false
}

// runExport writes the document (or one swimlane or item) as JSON.
func runExport(store *board.Store, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fardplan export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		outPath string
		laneID  string
		itemID  string
	)
	fs.StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	fs.StringVar(&laneID, "swimlane", "", "export one swimlane and its items")
	fs.StringVar(&itemID, "item", "", "export one item")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse export flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected export arguments: %v", fs.Args())
	}
	if laneID != "" && itemID != "" {
		return fmt.Errorf("-swimlane and -item are mutually exclusive")
	}

	var (
		encoded []byte
		err     error
	)
	switch {
	case laneID != "":
		encoded, err = store.ExportSwimlane(laneID)
	case itemID != "":
		encoded, err = store.ExportItem(itemID)
	default:
		encoded, err = store.ExportData()
	}
	if err != nil {
		return fmt.Errorf("export document: %w", err)
	}
	encoded = append(encoded, '\n')

	if outPath == "-" {
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write export to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// runImport replaces the document from a JSON file and persists it.
func runImport(ctx context.Context, store *board.Store, repo *sqlite.Repository, args []string) error {
	fs := flag.NewFlagSet("fardplan import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var inPath string
	fs.StringVar(&inPath, "in", "", "input document JSON file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse import flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected import arguments: %v", fs.Args())
	}
	if inPath == "" {
		return fmt.Errorf("-in is required")
	}

	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	if err := store.Import(content); err != nil {
		return fmt.Errorf("import document: %w", err)
	}

	doc, ok := store.Document()
	if !ok {
		return fmt.Errorf("no board document loaded")
	}
	if err := repo.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("persist imported document: %w", err)
	}
	return nil
}

// firstArg handles first arg.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// splitList splits a comma-separated flag value into trimmed entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseBoolEnv reads a boolean environment value, reporting whether it was set.
func parseBoolEnv(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return value, true
}
