// cmd/annmon/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rusenback/announce-monitor/internal/config"
	"github.com/rusenback/announce-monitor/internal/deploy"
	"github.com/rusenback/announce-monitor/internal/logging"
	"github.com/rusenback/announce-monitor/internal/monitor"
	"github.com/rusenback/announce-monitor/internal/notify"
	"github.com/rusenback/announce-monitor/internal/source"
	"github.com/rusenback/announce-monitor/internal/storage"
	"github.com/rusenback/announce-monitor/internal/tui"
)

func main() {
	headless := flag.Bool("headless", false, "run without the dashboard (container mode)")
	configPath := flag.String("config", "", "path to annmon.yaml")
	flag.Parse()

	// .env työhakemistosta, jos on
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	dataDir, err := cfg.ResolvedDataDir()
	if err != nil {
		fmt.Printf("❌ Failed to resolve data directory: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(dataDir, *headless)
	if err != nil {
		fmt.Printf("❌ Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create storage
	store, err := storage.NewStorage(dataDir)
	if err != nil {
		fmt.Printf("❌ Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Assemble the enabled sources
	httpClient := source.NewClient(source.DefaultClientConfig())
	var sources []source.Source
	if cfg.Sources.WeixinPayEnabled() {
		sources = append(sources, source.NewWeixinPaySource(httpClient, cfg.Location()))
	}
	if cfg.Sources.TencentCloudEnabled() {
		sources = append(sources, source.NewTencentCloudSource(httpClient))
	}
	if cfg.Sources.YeepayEnabled() {
		sources = append(sources, source.NewYeepaySource(httpClient))
	}
	if len(sources) == 0 {
		fmt.Println("❌ All sources are disabled, nothing to monitor")
		os.Exit(1)
	}

	notifier := notify.NewWeComNotifier(cfg.WebhookURL, cfg.Location())

	mon := monitor.New(monitor.Config{
		Sources:       sources,
		Store:         store,
		Notifier:      notifier,
		Interval:      cfg.PollInterval.Std(),
		Location:      cfg.Location(),
		DebugTime:     cfg.DebugTime(),
		NotifyOnStart: cfg.NotifyOnStart,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless {
		if err := mon.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("monitor exited", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	// Deployment panel on valinnainen, dashboard toimii ilman Dockeria
	var deployClient deploy.DeployClient
	client, err := deploy.NewClient(deploy.DefaultConfig())
	if err != nil {
		logger.Warn("docker not available, deployment panel disabled", zap.Error(err))
	} else {
		deployClient = client
		defer client.Close()
	}

	go func() {
		if err := mon.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("monitor exited", zap.Error(err))
		}
	}()

	m := tui.NewModel(mon, store, deployClient, cfg.Project)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
