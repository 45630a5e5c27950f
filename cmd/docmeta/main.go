package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmeta"
	"github.com/fwojciec/docmeta/extract"
	"github.com/fwojciec/docmeta/goquery"
	dmhttp "github.com/fwojciec/docmeta/http"
	"github.com/fwojciec/docmeta/memory"
	dmredis "github.com/fwojciec/docmeta/redis"
	dmslog "github.com/fwojciec/docmeta/slog"
	"github.com/fwojciec/docmeta/sqlite"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Resources opened by Run and released by Close.
	DB    *sqlite.DB
	Redis *redis.Client

	Fetcher docmeta.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.Redis != nil {
		_ = m.Redis.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmeta"),
		kong.Description("Extract public metadata from document landing pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_db": defaultDBPath()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docmeta --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.LogLevel)

	// Wire the extraction pipeline.
	fetcher := dmhttp.NewFetcher(
		dmhttp.WithTimeout(cli.Timeout),
		dmhttp.WithReferer(cli.Referer),
	)
	m.Fetcher = dmslog.NewLoggingFetcher(fetcher, deps.Logger)
	defer m.Close()

	deps.Service = extract.NewService(m.Fetcher, goquery.NewExtractor(goquery.WithBrand(cli.Brand)))
	deps.Metadata = dmslog.NewLoggingMetadataService(deps.Service, deps.Logger)

	// Only the task commands need a store.
	if !strings.HasPrefix(kongCtx.Command(), "extract") {
		store, err := m.openStore(ctx, cli, stderr)
		if err != nil {
			return err
		}
		deps.Tasks = dmslog.NewLoggingTaskStore(store, deps.Logger)
		deps.Jobs = extract.NewJobs(deps.Metadata, deps.Tasks)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openStore(ctx context.Context, cli *CLI, stderr io.Writer) (docmeta.TaskStore, error) {
	switch cli.Store {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCMETA_DB to use a different database path\n")
			return nil, fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		return sqlite.NewTaskStore(m.DB), nil
	case "redis":
		m.Redis = redis.NewClient(&redis.Options{Addr: cli.RedisAddr})
		if err := m.Redis.Ping(ctx).Err(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCMETA_REDIS_ADDR to point at a running Redis\n")
			return nil, fmt.Errorf("failed to connect to redis at %q: %w", cli.RedisAddr, err)
		}
		return dmredis.NewTaskStore(m.Redis), nil
	default:
		return memory.NewTaskStore(), nil
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultDBPath() string {
	if path := os.Getenv("DOCMETA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docmeta.db"
	}
	return filepath.Join(home, ".docmeta", "docmeta.db")
}
