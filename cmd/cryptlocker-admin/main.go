package main

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const (
	defaultMigrationTimeout = 5 * time.Minute
	defaultCommandTimeout   = 2 * time.Minute
)

func main() {
	logger := bootstrap.InitLogger(false)

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Apply local cache database migrations",
			run:         runMigrations,
		},
		"migrate-status": {
			name:        "migrate-status",
			description: "Show applied and pending cache migrations",
			run:         runMigrationStatus,
		},
		"resolve-url": {
			name:        "resolve-url",
			description: "Print the backend URL a path resolves to for a service",
			run:         runResolveURL,
		},
		"list-users": {
			name:        "list-users",
			description: "List users mirrored into the local cache",
			run:         runListUsers,
		},
		"prune-cache": {
			name:        "prune-cache",
			description: "Run one reaper pass over stale token mappings and documents",
			run:         runPruneCache,
		},
		"list-sessions": {
			name:        "list-sessions",
			description: "List Redis sessions that hold a backend token",
			run:         runListSessions,
		},
		"clear-session": {
			name:        "clear-session",
			description: "Remove a session's token, service and profile from Redis",
			run:         runClearSession,
		},
	}
}

func sortedCommands() []command {
	all := commands()
	out := make([]command, 0, len(all))
	for _, c := range all {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: cryptlocker-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range sortedCommands() {
		if err := writef(os.Stdout, "  %-24s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}
