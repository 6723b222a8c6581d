package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/saylorsolutions/defaultcmd/cli"
	"github.com/saylorsolutions/defaultcmd/config"
	"github.com/saylorsolutions/defaultcmd/defaultgroup"
	"github.com/saylorsolutions/defaultcmd/diag"
	"io"
	"log/slog"
	"os"
	"sync"
	"syscall"
)

const (
	appName       = "sample-shell"
	defaultPrompt = "sample-shell-with-default $ "
)

var preExecOnce sync.Once

func main() {
	ctx, cancel := signalExitCtx(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stderr)
	cancel()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	configPath := config.PathFromEnv()
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return err
	}
	logging, err := diag.Init(diag.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, stderr)
	if err != nil {
		return err
	}
	defer func() {
		_ = logging.Close()
	}()
	logger := logging.Logger

	set := cli.NewCommandSet(appName)
	set.Printer().Redirect(stderr)
	registry := prometheus.NewRegistry()
	group := defaultgroup.New(set,
		defaultgroup.WithLogger(logger),
		defaultgroup.WithDefaultIfNoArgs(cfg.DefaultIfNoArgs),
	).RegisterMetrics(registry)
	declareCommands(group, logger)
	preExecOnce.Do(func() {
		cli.AddGlobalPreExec(func(cmd *cli.Command, args []string) error {
			slog.Debug("Running command", "command", cmd.CommandPath(), "args", args)
			return nil
		})
	})

	if !cli.InteractiveRequested(args) && (len(args) > 0 || cfg.DefaultIfNoArgs) {
		return group.Exec(args)
	}

	if len(configPath) > 0 {
		watcher, err := config.NewWatcher(configPath, nil, config.WithWatcherLogger(logger))
		if err != nil {
			logger.Warn("Config changes won't be applied until restart", "error", err)
		} else {
			watcher.OnChange(func(cfg config.Config) {
				if err := logging.SetLevel(cfg.Log.Level); err != nil {
					logger.Warn("Ignoring log level change", "error", err)
				}
			})
			watcher.StartAsync()
			defer func() {
				_ = watcher.Stop()
			}()
		}
	}

	prompt := cfg.Prompt
	if len(prompt) == 0 {
		prompt = defaultPrompt
	}
	sh := defaultgroup.NewShell(group,
		cli.WithInput(stdin),
		cli.WithPrompt(prompt),
		cli.WithIntro(cfg.Intro),
		cli.WithHistoryFile(cfg.HistoryFile),
		cli.WithOnFinished(func(_ *cli.Context) {
			logSummary(logger, registry)
		}),
	)
	err = sh.Run(ctx)
	if errors.Is(ctx.Err(), context.Canceled) {
		logger.Debug("Shell interrupted")
	}
	return err
}

// logSummary logs the invocation counts gathered while the shell ran.
func logSummary(logger *slog.Logger, registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		logger.Warn("Failed to gather metrics", "error", err)
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			attrs := []any{"metric", family.GetName(), "value", metric.GetCounter().GetValue()}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			logger.Debug("Session metric", attrs...)
		}
	}
}
