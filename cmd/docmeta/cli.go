package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docmeta"
	"github.com/fwojciec/docmeta/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Service  *extract.Service
	Metadata docmeta.MetadataService
	Tasks    docmeta.TaskStore
	Jobs     *extract.Jobs
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel  string        `name:"log-level" env:"DOCMETA_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	Timeout   time.Duration `short:"t" env:"DOCMETA_TIMEOUT" default:"10s" help:"Fetch timeout"`
	Brand     string        `env:"DOCMETA_BRAND" default:"Scribd" help:"Platform name stripped from titles"`
	Referer   string        `env:"DOCMETA_REFERER" default:"https://www.scribd.com/" help:"Referer header sent with fetches"`
	Store     string        `env:"DOCMETA_STORE" default:"memory" enum:"memory,sqlite,redis" help:"Task status store"`
	DB        string        `name:"db" env:"DOCMETA_DB" default:"${default_db}" help:"SQLite database path"`
	RedisAddr string        `name:"redis-addr" env:"DOCMETA_REDIS_ADDR" default:"localhost:6379" help:"Redis address"`

	Extract   ExtractCmd   `cmd:"" help:"Extract metadata for one or more document URLs"`
	Serve     ServeCmd     `cmd:"" help:"Serve the metadata and status HTTP API"`
	Status    StatusCmd    `cmd:"" help:"Show the status of a task"`
	SetStatus SetStatusCmd `cmd:"" name:"set-status" help:"Write the status of a task"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" name:"url" help:"Document URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per host (0 disables)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"DOCMETA_ADDR" default:":8080" help:"Listen address"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	TaskID string `arg:"" name:"task-id" help:"Task ID"`
}

// SetStatusCmd is the "set-status" subcommand.
type SetStatusCmd struct {
	TaskID  string            `arg:"" name:"task-id" help:"Task ID"`
	Status  string            `arg:"" help:"Status label (e.g. pending, done, error)"`
	Message string            `arg:"" optional:"" help:"Human-readable message"`
	Extra   map[string]string `short:"e" help:"Extra payload field as key=value (repeatable)"`
}
