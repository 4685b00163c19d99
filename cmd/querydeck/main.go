package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"querydeck/internal/client"
	"querydeck/internal/config"
	"querydeck/internal/eventbus"
	"querydeck/internal/logger"
	"querydeck/internal/metrics"
	"querydeck/internal/ui"
	"querydeck/internal/ui/screens"
)

var descriptions = map[string]string{
	"search":     "Search across every resource type",
	"projects":   "Browse data projects",
	"queries":    "Browse saved queries",
	"users":      "Browse users",
	"workspaces": "Browse workspaces",
	"reports":    "Browse reports",
	"roles":      "Browse roles",
}

type globalOptions struct {
	configPath string
	baseURL    string
	token      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "querydeck",
		Short:        "Terminal console for the platform's list screens",
		Long:         "querydeck opens a searchable, filterable, paginated list of platform resources.\nWithout a subcommand it opens the cross-resource search.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScreen(cmd.Context(), opts, "search")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.baseURL, "base-url", "", "API base URL, overrides api.base_url")
	flags.StringVar(&opts.token, "token", "", "API bearer token, overrides api.token")

	for _, name := range screens.Names {
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: descriptions[name],
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runScreen(cmd.Context(), opts, name)
			},
		})
	}
	root.AddCommand(newConfigCmd(opts))
	return root
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := config.NewConfigService(opts.configPath)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}
			cfg := config.DefaultConfig()
			opts.apply(cfg)
			if err := svc.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(initCmd, &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(opts.configPath).Path())
		},
	})
	return cmd
}

// apply lets command-line flags override the loaded configuration
func (o *globalOptions) apply(cfg *config.Config) {
	if o.baseURL != "" {
		cfg.API.BaseURL = o.baseURL
	}
	if o.token != "" {
		cfg.API.Token = o.token
	}
}

func runScreen(ctx context.Context, opts *globalOptions, name string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := config.NewConfigService(opts.configPath)
	cfg, err := svc.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	opts.apply(cfg)

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bus := eventbus.New(log)
	defer bus.Close()

	// Subscribed before anything publishes; events wait until the screen is up
	events := ui.NewEventForwarder(bus, log)
	defer events.Close()

	source := svc.Path()
	if _, err := os.Stat(source); errors.Is(err, os.ErrNotExist) {
		source = ""
	}
	bus.Publish(eventbus.ConfigLoadedEvent{Path: source, BaseURL: cfg.API.BaseURL})
	log.Info("configuration loaded",
		zap.String("path", source),
		zap.String("base_url", cfg.API.BaseURL),
		zap.Bool("token", cfg.API.Token != ""))

	retry := client.DefaultRetryConfig()
	retry.MaxRetries = cfg.API.Retries
	api, err := client.New(client.Config{
		BaseURL:           cfg.API.BaseURL,
		Token:             cfg.API.Token,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Retry:             retry,
	}, log)
	if err != nil {
		return err
	}

	app, err := ui.Open(name, ui.Deps{
		Client: api,
		Search: cfg.Search,
		Bus:    bus,
		Events: events,
		Logger: log,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// The metrics server lives as long as the screen
	g.Go(func() error {
		defer cancel()
		return app.Run(gctx)
	})

	if cfg.Metrics.Addr != "" {
		recorder := metrics.NewRecorder()
		detach := recorder.Attach(bus)
		defer detach()
		g.Go(func() error {
			log.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
			return recorder.Serve(gctx, cfg.Metrics.Addr)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("exited with error", zap.Error(err))
		return err
	}
	return nil
}
