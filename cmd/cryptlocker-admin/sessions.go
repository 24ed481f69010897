package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/redis/go-redis/v9"

	redisadapter "github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/redis"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/bootstrap"
)

type listSessionsOptions struct {
	Limit int
}

type clearSessionOptions struct {
	SessionID string
	DryRun    bool
	Yes       bool
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseListSessionsFlags(args)
	if err != nil {
		return err
	}
	return withSessionStore(cmdCtx, func(ctx context.Context, store *redisadapter.SessionStore) error {
		return listSessions(ctx, os.Stdout, store, opts)
	})
}

func listSessions(ctx context.Context, w io.Writer, store *redisadapter.SessionStore, opts listSessionsOptions) error {
	ids, err := store.ListSessionIDs(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return writeln(w, "No active sessions.")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeln(tw, "SESSION\tSERVICE\tUSER\tROLE"); err != nil {
		return err
	}
	for _, sid := range ids {
		stored := store.Load(ctx, sid)
		username, role := "-", "-"
		if user, profileErr := store.LoadProfile(ctx, sid); profileErr == nil {
			username, role = user.Username, string(user.Role)
		} else if !errors.Is(profileErr, redisadapter.ErrNotFound) {
			return profileErr
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\n", sid, stored.Service, username, role); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runClearSession(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearSessionFlags(args)
	if err != nil {
		return err
	}
	if opts.DryRun {
		return writef(os.Stdout, "Would clear session %q.\n", opts.SessionID)
	}
	if confirmErr := confirmClearSession(os.Stdin, os.Stdout, opts); confirmErr != nil {
		return confirmErr
	}
	return withSessionStore(cmdCtx, func(ctx context.Context, store *redisadapter.SessionStore) error {
		if clearErr := store.Clear(ctx, opts.SessionID); clearErr != nil {
			return clearErr
		}
		cmdCtx.Logger.Info("session cleared", "session_id", opts.SessionID)
		return nil
	})
}

func confirmClearSession(in io.Reader, out io.Writer, opts clearSessionOptions) error {
	if opts.Yes {
		return nil
	}
	if err := writef(out, "About to clear session %q; the user will be logged out.\n", opts.SessionID); err != nil {
		return fmt.Errorf("print confirmation message: %w", err)
	}
	if err := writef(out, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && resp == "" {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func parseListSessionsFlags(args []string) (listSessionsOptions, error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listSessionsOptions
	fs.IntVar(&opts.Limit, "limit", 100, "Maximum number of sessions to print (0 for all)")

	if err := fs.Parse(args); err != nil {
		return listSessionsOptions{}, err
	}
	if opts.Limit < 0 {
		return listSessionsOptions{}, errors.New("--limit cannot be negative")
	}
	return opts, nil
}

func parseClearSessionFlags(args []string) (clearSessionOptions, error) {
	fs := flag.NewFlagSet("clear-session", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearSessionOptions
	fs.StringVar(&opts.SessionID, "sid", "", "Session ID to clear (required)")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearSessionOptions{}, err
	}
	opts.SessionID = strings.TrimSpace(opts.SessionID)
	if opts.SessionID == "" {
		return clearSessionOptions{}, errors.New("--sid is required")
	}
	return opts, nil
}

func withSessionStore(
	cmdCtx *commandContext,
	f func(context.Context, *redisadapter.SessionStore) error,
) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer closeRedis(cmdCtx, client)

	store := redisadapter.NewSessionStore(client, redisadapter.SessionStoreOptions{
		Prefix: cmdCtx.Config.Auth.KeyPrefix,
		Logger: cmdCtx.Logger,
	})
	return f(ctx, store)
}

func closeRedis(cmdCtx *commandContext, client redis.UniversalClient) {
	if cerr := client.Close(); cerr != nil {
		cmdCtx.Logger.Warn("redis close failed", "error", cerr)
	}
}
