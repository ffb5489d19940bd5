package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/spf13/pflag"
)

// migrateResponse is the part of a migrate result the checker needs
type migrateResponse struct {
	MigrationsExecuted int  `json:"migrationsExecuted"`
	Success            bool `json:"success"`
}

// infoResponse is the part of an info response the checker needs
type infoResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Migrations    []struct {
		State string `json:"state"`
	} `json:"migrations"`
}

// Request is one admin API call in the mix
type Request struct {
	Name   string
	Method string
	Path   string
	Body   string
}

// Result contains the outcome of a single request
type Result struct {
	Name         string
	StatusCode   int
	ResponseTime time.Duration
	Executed     int
	Error        error
}

// Stats contains aggregated statistics
type Stats struct {
	mu            sync.Mutex
	ResponseTimes []time.Duration
	ByRequest     map[string]int
	ByStatus      map[int]int
	Errors        map[string]int
	Executed      int
}

func (s *Stats) add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ResponseTimes = append(s.ResponseTimes, r.ResponseTime)
	s.ByRequest[r.Name]++
	s.ByStatus[r.StatusCode]++
	s.Executed += r.Executed
	if r.Error != nil {
		s.Errors[r.Error.Error()]++
	}
}

var requestMix = []Request{
	{"info", http.MethodGet, "/api/v1/migrations", ""},
	{"pending", http.MethodGet, "/api/v1/migrations/pending", ""},
	{"current", http.MethodGet, "/api/v1/migrations/current", ""},
	{"validate", http.MethodPost, "/api/v1/migrations/validate", ""},
	{"migrate", http.MethodPost, "/api/v1/migrations/migrate", `{"target":"latest"}`},
	{"migrate next", http.MethodPost, "/api/v1/migrations/migrate", `{"target":"next"}`},
}

// Fires a mix of concurrent commands at the admin API and checks that no
// migration ran twice: the executed total must equal the pending count seen first.
func main() {
	concurrency := pflag.IntP("concurrency", "c", 8, "number of concurrent clients")
	total := pflag.IntP("requests", "n", 200, "total number of requests")
	baseURL := pflag.String("url", "http://localhost:8080", "base URL of the admin API")
	delay := pflag.Duration("delay", 20*time.Millisecond, "delay between requests of one client")
	pflag.Parse()

	client := &http.Client{Timeout: 5 * time.Minute}

	before, err := fetchInfo(client, *baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	pending := 0
	for _, m := range before.Migrations {
		if m.State == "PENDING" {
			pending++
		}
	}

	fmt.Printf("Schema version before: %q, pending migrations: %d\n", before.SchemaVersion, pending)
	fmt.Printf("Concurrency: %d, requests: %d, delay: %v\n", *concurrency, *total, *delay)

	stats := &Stats{
		ByRequest: make(map[string]int),
		ByStatus:  make(map[int]int),
		Errors:    make(map[string]int),
	}
	jobs := make(chan int, *total)
	for i := 0; i < *total; i++ {
		jobs <- i
	}
	close(jobs)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if *delay > 0 {
					time.Sleep(*delay)
				}
				stats.add(send(client, *baseURL, requestMix[rand.IntN(len(requestMix))]))
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	after, err := fetchInfo(client, *baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printResults(stats, elapsed, *total)
	fmt.Printf("\nSchema version after: %q\n", after.SchemaVersion)
	if stats.Executed != pending {
		fmt.Printf("FAIL: %d migrations executed, expected %d\n", stats.Executed, pending)
		os.Exit(1)
	}
	fmt.Printf("OK: every pending migration executed exactly once (%d)\n", pending)
}

func fetchInfo(client *http.Client, baseURL string) (*infoResponse, error) {
	resp, err := client.Get(baseURL + "/api/v1/migrations")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("info returned HTTP %d", resp.StatusCode)
	}
	var info infoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func send(client *http.Client, baseURL string, r Request) Result {
	req, err := http.NewRequest(r.Method, baseURL+r.Path, bytes.NewBufferString(r.Body))
	if err != nil {
		return Result{Name: r.Name, Error: err}
	}
	if r.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	result := Result{Name: r.Name, ResponseTime: time.Since(start)}
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 400 {
		result.Error = fmt.Errorf("%s: HTTP %d", r.Name, resp.StatusCode)
	}
	if r.Name == "migrate" || r.Name == "migrate next" {
		var body migrateResponse
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Success {
			result.Executed = body.MigrationsExecuted
		}
	}
	return result
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *Stats, elapsed time.Duration, total int) {
	times := slices.Clone(stats.ResponseTimes)
	slices.Sort(times)

	fmt.Println("\n================= RESULTS =================")
	fmt.Printf("Total time:   %.2f seconds (%.1f req/s)\n", elapsed.Seconds(), float64(total)/elapsed.Seconds())
	fmt.Printf("P50 response: %v\n", percentile(times, 50))
	fmt.Printf("P90 response: %v\n", percentile(times, 90))
	fmt.Printf("P99 response: %v\n", percentile(times, 99))

	fmt.Println("\n----------------- REQUESTS -----------------")
	for _, r := range requestMix {
		fmt.Printf("%-14s %d\n", r.Name, stats.ByRequest[r.Name])
	}

	fmt.Println("\n----------------- STATUS CODES -----------------")
	codes := make([]int, 0, len(stats.ByStatus))
	for code := range stats.ByStatus {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		fmt.Printf("%-5d %d\n", code, stats.ByStatus[code])
	}

	if len(stats.Errors) > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range stats.Errors {
			fmt.Printf("%-40s %d\n", msg, count)
		}
	}
}
