package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/niloxx/davil/internal/config"
	"github.com/niloxx/davil/internal/dataset"
	"github.com/niloxx/davil/internal/version"
	"github.com/niloxx/davil/internal/view"
)

var (
	listen     = flag.String("listen", "", "Listen address (overrides config)")
	dataDir    = flag.String("data", "", "Directory with dataset files (overrides config)")
	file       = flag.String("file", "", "Dataset file to open on startup (defaults to the first file)")
	configPath = flag.String("config", "", "Path to JSON view configuration")
)

func main() {
	flag.Parse()
	log.Printf("davil %s (%s)", version.Version, version.GitSHA)

	cfg := config.EmptyViewConfig()
	if *configPath != "" {
		loaded, err := config.LoadViewConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.ListenAddr = listen
	}
	if *dataDir != "" {
		cfg.DataDir = dataDir
	}

	catalog, err := dataset.NewCatalog(cfg.GetDataDir(), *file)
	if err != nil {
		log.Fatalf("failed to open dataset catalog: %v", err)
	}

	starView, err := view.NewStarView(catalog, cfg)
	if err != nil {
		log.Fatalf("failed to build view: %v", err)
	}

	server := view.NewWebServer(view.WebServerConfig{
		Address: cfg.GetListenAddr(),
		View:    starView,
	})

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Start(ctx); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
