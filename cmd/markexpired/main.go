// jobTracker expiry sweep CLI
//
// Triggers the server's mark-expired sweep, or previews which active
// listings are past their expiry window without changing anything.
//
// Usage:
//
//	markexpired            run the sweep
//	markexpired -dry-run   list listings that would expire
//	markexpired -stats     print the status distribution
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type jobRow struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func main() {
	apiBase := flag.String("api-base", "http://localhost:3000", "server base URL")
	dryRun := flag.Bool("dry-run", false, "list would-expire listings without changing anything")
	stats := flag.Bool("stats", false, "print the listing status distribution and exit")
	flag.Parse()

	client := &http.Client{Timeout: 60 * time.Second}

	switch {
	case *stats:
		if err := printStats(client, *apiBase); err != nil {
			log.Fatalf("[markexpired] %v", err)
		}
	case *dryRun:
		if err := preview(client, *apiBase); err != nil {
			log.Fatalf("[markexpired] %v", err)
		}
	default:
		if err := sweep(client, *apiBase); err != nil {
			log.Fatalf("[markexpired] %v", err)
		}
	}
}

func sweep(client *http.Client, apiBase string) error {
	resp, err := client.Post(apiBase+"/api/jobs/mark-expired", "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var body struct {
		ExpiredCount int64 `json:"expired_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	fmt.Printf("Marked %d listing(s) expired\n", body.ExpiredCount)
	return nil
}

func preview(client *http.Client, apiBase string) error {
	resp, err := client.Get(apiBase + "/api/jobs?status=active&limit=100")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var body struct {
		Jobs []jobRow `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	now := time.Now().UTC()
	count := 0
	for _, j := range body.Jobs {
		if j.ExpiresAt != nil && j.ExpiresAt.Before(now) {
			count++
			fmt.Printf("  #%d  %s — %s  (expired %s)\n", j.ID, j.Title, j.Company, j.ExpiresAt.Format("2006-01-02"))
		}
	}

	if count == 0 {
		fmt.Println("No active listings are past their expiry window")
	} else {
		fmt.Printf("%d listing(s) would be marked expired\n", count)
	}
	return nil
}

func printStats(client *http.Client, apiBase string) error {
	resp, err := client.Get(apiBase + "/api/jobs/count")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var body struct {
		Total    int            `json:"total"`
		Statuses map[string]int `json:"statuses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	w := os.Stdout
	fmt.Fprintf(w, "Displayable active listings: %d\n", body.Total)
	fmt.Fprintln(w, "Status distribution:")
	for status, n := range body.Statuses {
		fmt.Fprintf(w, "  %-10s %d\n", status, n)
	}
	return nil
}
