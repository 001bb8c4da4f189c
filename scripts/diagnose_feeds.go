// Command diagnose_feeds probes every feed in the worker's sources file and
// reports which ones are healthy. Run it before deploying a sources change:
//
//	go run ./scripts/diagnose_feeds.go [path/to/sources.yaml]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// FeedDiagnostic is the probe result for a single feed.
type FeedDiagnostic struct {
	Category     string `json:"category"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "FETCH_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	FeedType     string `json:"feed_type,omitempty"` // "rss", "atom", "json"
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

type sourcesFile struct {
	Categories []struct {
		Name  string   `yaml:"name"`
		Feeds []string `yaml:"feeds"`
	} `yaml:"categories"`
}

func main() {
	path := "configs/sources.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read sources file: %v", err)
	}

	var sources sourcesFile
	if err := yaml.Unmarshal(raw, &sources); err != nil {
		log.Fatalf("Failed to parse sources file: %v", err)
	}

	total := 0
	for _, cat := range sources.Categories {
		total += len(cat.Feeds)
	}
	log.Printf("Diagnosing %d feeds across %d categories...", total, len(sources.Categories))

	client := &http.Client{Timeout: 30 * time.Second}
	parser := gofeed.NewParser()
	parser.Client = client

	diagnostics := make([]FeedDiagnostic, 0, total)
	i := 0
	for _, cat := range sources.Categories {
		for _, feedURL := range cat.Feeds {
			i++
			log.Printf("[%d/%d] %s: %s", i, total, cat.Name, feedURL)
			diagnostics = append(diagnostics, diagnoseFeed(parser, cat.Name, feedURL, 30*time.Second))

			// 連続アクセスで相手サーバに負荷をかけない
			time.Sleep(500 * time.Millisecond)
		}
	}

	printReport(diagnostics)
	writeJSONReport(diagnostics)
}

func diagnoseFeed(parser *gofeed.Parser, category, url string, timeout time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{
		Category: category,
		URL:      url,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	feed, err := parser.ParseURLWithContext(url, ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("request timeout after %v", timeout)
		} else {
			diag.Status = "FETCH_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}

	diag.FeedType = feed.FeedType
	diag.ItemCount = len(feed.Items)

	if len(feed.Items) == 0 {
		diag.Status = "EMPTY"
		diag.ErrorMessage = "feed has no items"
		return diag
	}

	if feed.Items[0].PublishedParsed != nil {
		diag.LatestDate = feed.Items[0].PublishedParsed.Format(time.RFC3339)
	}

	diag.Status = "OK"
	return diag
}

func printReport(diagnostics []FeedDiagnostic) {
	var okCount, brokenCount int
	statusCount := make(map[string]int)
	for _, d := range diagnostics {
		statusCount[d.Status]++
		if d.Status == "OK" {
			okCount++
		} else {
			brokenCount++
		}
	}

	fmt.Println("===============================================")
	fmt.Println("Feed Diagnostic Report")
	fmt.Printf("Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("Total Feeds: %d\n", len(diagnostics))
	fmt.Println("===============================================")
	fmt.Printf("Working: %d\n", okCount)
	fmt.Printf("Broken:  %d\n", brokenCount)
	for status, count := range statusCount {
		fmt.Printf("  %s: %d\n", status, count)
	}
	fmt.Println()

	for _, d := range diagnostics {
		if d.Status == "OK" {
			fmt.Printf("OK     [%s] %s (%s, %d items, latest %s, %dms)\n",
				d.Category, d.URL, d.FeedType, d.ItemCount, d.LatestDate, d.ResponseTime)
		} else {
			fmt.Printf("BROKEN [%s] %s (%s: %s)\n",
				d.Category, d.URL, d.Status, d.ErrorMessage)
		}
	}
}

func writeJSONReport(diagnostics []FeedDiagnostic) {
	f, err := os.Create("feed_diagnostic_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report file: %v", err)
		}
	}()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}

	log.Println("JSON report generated: feed_diagnostic_report.json")
}
