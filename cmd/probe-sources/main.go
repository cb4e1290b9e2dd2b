// Probe program to check which source sites are reachable and what the
// stat parser extracts from them, without touching the fact store.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/rivalry/internal/ingest"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/scrape"
	"github.com/ppiankov/rivalry/internal/util"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	sources := flag.Args()
	if len(sources) == 0 {
		sources = model.DefaultSources
	}

	cfg := model.DefaultConfig().HTTP
	fetcher := ingest.NewFetcher(cfg)
	ingest.WithRobots(util.NewRobotsCheckerWithClient(cfg.UserAgent, fetcher.Client()))(fetcher)
	parser := scrape.NewParser()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Println("=== Source Probe ===")
	fmt.Println()

	for _, source := range sources {
		fmt.Printf("Probing: %s\n", source)
		fmt.Println(strings.Repeat("-", 60))

		page, err := fetcher.Fetch(ctx, source)
		if err != nil {
			fmt.Printf("  ✗ unreachable: %v\n\n", err)
			continue
		}
		fmt.Printf("  ✓ %d %s (%d bytes)\n", page.StatusCode, page.ContentType, len(page.HTML))

		stats, err := parser.Parse(page.HTML)
		if err != nil {
			fmt.Printf("  ✗ parse error: %v\n\n", err)
			continue
		}
		if len(stats) == 0 {
			fmt.Println("  ⚠️  no stats extracted (refresh would fall back to seed data)")
		}
		for _, s := range stats {
			fmt.Printf("     - [%s] %s: %s vs %s\n", s.Category, s.Description, s.ValueA, s.ValueB)
		}
		fmt.Println()
	}
}
