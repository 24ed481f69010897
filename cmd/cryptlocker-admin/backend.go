package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/walletapi"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
)

type resolveOptions struct {
	Service string
	Path    string
	All     bool
}

func runResolveURL(cmdCtx *commandContext, args []string) error {
	opts, err := parseResolveFlags(args)
	if err != nil {
		return err
	}
	return printResolved(os.Stdout, cmdCtx.Config.Backends, opts)
}

func printResolved(w io.Writer, cfg config.BackendsConfig, opts resolveOptions) error {
	router := walletapi.NewRouter(cfg)
	if !opts.All {
		return writeln(w, router.ResolveURL(backend.ParseService(opts.Service), opts.Path))
	}
	for _, svc := range backend.Services() {
		if err := writef(w, "%-9s %s\n", svc, router.ResolveURL(svc, opts.Path)); err != nil {
			return err
		}
	}
	return nil
}

func parseResolveFlags(args []string) (resolveOptions, error) {
	fs := flag.NewFlagSet("resolve-url", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts resolveOptions
	fs.StringVar(&opts.Service, "service", string(backend.DefaultService), "Backend service (holder, issuer, verifier)")
	fs.StringVar(&opts.Path, "path", "", "API path to resolve, e.g. /credentials")
	fs.BoolVar(&opts.All, "all", false, "Resolve the path against every backend")

	if err := fs.Parse(args); err != nil {
		return resolveOptions{}, err
	}
	if opts.Path == "" && fs.NArg() > 0 {
		opts.Path = fs.Arg(0)
	}
	opts.Service = strings.ToLower(strings.TrimSpace(opts.Service))
	if !opts.All && !backend.Service(opts.Service).Valid() {
		return resolveOptions{}, errors.New("--service must be one of holder, issuer, verifier")
	}
	return opts, nil
}
