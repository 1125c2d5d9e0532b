// jobTracker batch ingest CLI
//
// Drives the running server's /api/jobs/search endpoint across a set of
// queries and result pages. Useful for seeding a fresh database or
// backfilling after the provider key was missing.
//
// Usage:
//
//	ingest -query "software engineer" -query "backend developer" -pages 3
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type queryList []string

func (q *queryList) String() string { return fmt.Sprint(*q) }

func (q *queryList) Set(v string) error {
	*q = append(*q, v)
	return nil
}

type outcome struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Inserted int `json:"inserted"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

type searchResponse struct {
	Outcome outcome `json:"outcome"`
}

func main() {
	var queries queryList
	flag.Var(&queries, "query", "search query (repeatable)")
	apiBase := flag.String("api-base", "http://localhost:3000", "server base URL")
	startPage := flag.Int("start-page", 1, "first provider result page")
	pages := flag.Int("pages", 3, "number of result pages per query")
	country := flag.String("country", "us", "provider country code")
	datePosted := flag.String("date-posted", "week", "provider posting-age filter")
	delay := flag.Float64("delay", 1.0, "seconds to sleep between requests")
	flag.Parse()

	if len(queries) == 0 {
		queries = queryList{"software engineer", "software developer", "SWE"}
	}

	client := &http.Client{Timeout: 60 * time.Second}

	var total outcome
	for _, query := range queries {
		for page := *startPage; page < *startPage+*pages; page++ {
			out, err := search(client, *apiBase, query, page, *country, *datePosted)
			if err != nil {
				log.Printf("[ingest-cli] %q page %d failed: %v — continuing", query, page, err)
				continue
			}
			log.Printf("[ingest-cli] %q page %d: fetched=%d upserted=%d inserted=%d failed=%d skipped=%d",
				query, page, out.Fetched, out.Upserted, out.Inserted, out.Failed, out.Skipped)

			total.Fetched += out.Fetched
			total.Upserted += out.Upserted
			total.Inserted += out.Inserted
			total.Failed += out.Failed
			total.Skipped += out.Skipped

			time.Sleep(time.Duration(*delay * float64(time.Second)))
		}
	}

	log.Printf("[ingest-cli] Done: fetched=%d upserted=%d inserted=%d failed=%d skipped=%d",
		total.Fetched, total.Upserted, total.Inserted, total.Failed, total.Skipped)
}

func search(client *http.Client, apiBase, query string, page int, country, datePosted string) (outcome, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("country", country)
	params.Set("date_posted", datePosted)

	resp, err := client.Get(apiBase + "/api/jobs/search?" + params.Encode())
	if err != nil {
		return outcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return outcome{}, fmt.Errorf("server returned %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return outcome{}, fmt.Errorf("decode response: %w", err)
	}
	return body.Outcome, nil
}
