// Command ghsearch searches GitHub repositories and users from the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/him0/swift-Sample-GitHubSearch-2016/config"
	"github.com/him0/swift-Sample-GitHubSearch-2016/i18n"
	"github.com/him0/swift-Sample-GitHubSearch-2016/internal/logger"
	"github.com/him0/swift-Sample-GitHubSearch-2016/internal/metrics"
	"github.com/him0/swift-Sample-GitHubSearch-2016/transport"
)

const version = "0.3.0"

// CLI defines the command-line interface.
type CLI struct {
	Config      string `help:"YAML config file; its keys override GHSEARCH_* variables." short:"c" type:"path"`
	Format      string `help:"Output format." short:"f" enum:"table,json,yaml" default:"table"`
	Lang        string `help:"Language for decode error messages." enum:"en,ja" default:"en"`
	LogLevel    string `help:"Override the configured log level (debug, info, warning, error)."`
	MetricsFile string `help:"Write Prometheus metrics in text format to this file on exit." type:"path"`

	Search  SearchCmd        `cmd:"" help:"Search repositories."`
	Users   UsersCmd         `cmd:"" help:"Search users."`
	Repo    RepoCmd          `cmd:"" help:"Show one repository."`
	Decode  DecodeCmd        `cmd:"" help:"Decode a saved API response from a file or stdin."`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// app carries what every command needs.
type app struct {
	cfg     config.Config
	base    *url.URL
	doer    transport.Doer
	log     *logger.Logger
	metrics *metrics.Metrics
	reg     *prometheus.Registry
	format  string
	out     io.Writer
	in      io.Reader
	ctx     context.Context
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the selected command and returns the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exit := -1
	parser, err := kong.New(&cli,
		kong.Name("ghsearch"),
		kong.Description("Search the GitHub API and print typed results."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exit = code }),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if exit >= 0 {
		return exit
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	a, err := newApp(ctx, &cli, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, userFriendlyError(err))
		return 1
	}
	defer a.log.Sync()

	err = kctx.Run(a)
	if cli.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(cli.MetricsFile, a.reg); werr != nil {
			a.log.Warn("write metrics", werr, map[string]interface{}{"path": cli.MetricsFile})
		}
	}
	if err != nil {
		a.log.Debug("command failed", err)
		fmt.Fprintln(stderr, userFriendlyError(err))
		return 1
	}
	return 0
}

func newApp(ctx context.Context, cli *CLI, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	i18n.SetLanguage(cli.Lang)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, ServiceName: "ghsearch"})
	if err != nil {
		return nil, err
	}
	base, err := cfg.Base()
	if err != nil {
		return nil, err
	}
	log.Debug("configuration loaded", nil, map[string]interface{}{
		"base_url": cfg.BaseURL,
		"timeout":  cfg.Timeout,
		"per_page": cfg.PerPage,
		"token":    cfg.Redacted().Token,
	})

	reg := prometheus.NewRegistry()
	return &app{
		cfg:  cfg,
		base: base,
		doer: transport.NewClient(
			transport.WithTimeout(cfg.Timeout),
			transport.WithToken(cfg.Token),
			transport.WithUserAgent(cfg.UserAgent),
			transport.WithMaxBodyBytes(cfg.MaxBodyBytes),
			transport.WithLogger(log),
		),
		log:     log,
		metrics: metrics.New(reg, ""),
		reg:     reg,
		format:  cli.Format,
		out:     stdout,
		in:      stdin,
		ctx:     ctx,
	}, nil
}
