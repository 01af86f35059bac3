package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/config"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/fetch"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/scrape"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/server"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

func main() {
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	serve := flag.Bool("serve", false, "Run the HTTP API server")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	inputFile := flag.String("input", "", "File containing match URLs to scrape (one per line)")
	outputFile := flag.String("output", "", "File to save outcomes to (JSON); stdout when empty")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	setupLogging(*logLevel)

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			slog.Error("failed to load configuration", "path", *configFile, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// Browser-rendered fetch first: the target page is client-rendered, so
	// the plain fetch usually only serves as the fallback.
	fetchers := []fetch.Fetcher{
		fetch.NewBrowserFetcher(cfg.Browser),
		fetch.NewHTTPFetcher(cfg.Scraper),
	}
	svc := scrape.New(cfg.Scraper.BaseURL, fetchers)
	defer svc.Close()

	if *serve {
		runServer(svc, cfg)
		return
	}

	urls := flag.Args()
	if *inputFile != "" {
		fromFile, err := readURLs(*inputFile)
		if err != nil {
			slog.Error("failed to read URL file", "path", *inputFile, "err", err)
			os.Exit(1)
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "no match URLs given: pass them as arguments or via -input")
		os.Exit(2)
	}

	outcomes := svc.ScrapeBatch(context.Background(), urls)

	successful := 0
	for _, o := range outcomes {
		if o.Success {
			successful++
		}
	}
	slog.Info("batch complete", "total", len(urls), "successful", successful, "failed", len(urls)-successful)

	if err := writeOutcomes(outcomes, *outputFile); err != nil {
		slog.Error("failed to write outcomes", "err", err)
		os.Exit(1)
	}
}

func runServer(svc *scrape.Service, cfg *config.AppConfig) {
	mux := http.NewServeMux()
	server.New(svc, cfg.Scraper).Register(mux)

	slog.Info("listening", "addr", cfg.Server.Addr, "base_url", cfg.Scraper.BaseURL)
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// readURLs reads match URLs from a file, one per line. Blank lines and lines
// starting with "#" are skipped.
func readURLs(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url != "" && !strings.HasPrefix(url, "#") {
			urls = append(urls, url)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// writeOutcomes saves the outcomes as indented JSON to a file, or stdout
// when no file is given.
func writeOutcomes(outcomes []models.ScrapeOutcome, filename string) error {
	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return err
	}
	if filename == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
