// Package sources fetches the remote CSV benchmark sets the sweep runs on.
// Responses are cached on disk, so repeated sweeps stay offline.
package sources

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "embed"

	"github.com/yyyoichi/httpcache-go"
	"github.com/yyyoichi/psokmeans/dataset"
)

// CacheDir holds the cached HTTP responses.
const CacheDir = "/tmp/psokmeans_http_cache/"

//go:embed dataset_urls.txt
var datasetURLs []byte

// Source is a remote CSV together with the columns to cluster on and the
// expected number of clusters.
type Source struct {
	Name    string
	K       int
	Columns []string
	URL     string
}

// Parse parses the embedded dataset_urls.txt.
func Parse() ([]Source, error) {
	return parse(datasetURLs)
}

func parse(data []byte) ([]Source, error) {
	var srcs []Source
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 || !strings.HasPrefix(fields[3], "http") {
			return nil, fmt.Errorf("line %d: want \"name k columns url\", got %q", n, line)
		}
		k, err := strconv.Atoi(fields[1])
		if err != nil || k < 1 {
			return nil, fmt.Errorf("line %d: bad k %q", n, fields[1])
		}
		srcs = append(srcs, Source{
			Name:    fields[0],
			K:       k,
			Columns: strings.Split(fields[2], ","),
			URL:     fields[3],
		})
	}
	return srcs, scanner.Err()
}

// rateLimitedClient wraps an HTTP client with a minimum interval between
// requests. Safe for concurrent use.
type rateLimitedClient struct {
	client   *http.Client
	interval time.Duration
	lastCall time.Time
	mu       sync.Mutex
}

func newRateLimitedClient(interval time.Duration) *rateLimitedClient {
	return &rateLimitedClient{
		client:   http.DefaultClient,
		interval: interval,
	}
}

func (r *rateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if elapsed := time.Since(r.lastCall); elapsed < r.interval {
		time.Sleep(r.interval - elapsed)
	}
	resp, err := r.client.Do(req)
	r.lastCall = time.Now()
	return resp, err
}

var client = httpcache.Client{
	Client:  newRateLimitedClient(250 * time.Millisecond),
	Cache:   httpcache.NewStorageCache(CacheDir),
	Handler: httpcache.NewDefaultHandler(),
}

// Fetch downloads the source's CSV, or reads it from the cache.
func Fetch(src Source) (*dataset.Table, error) {
	resp, err := client.Get(src.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status for %s: %d", src.Name, resp.StatusCode)
	}
	t, err := dataset.Read(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.Name, err)
	}
	return t, nil
}

// Points fetches the source and selects its columns.
func Points(src Source) ([][]float64, error) {
	t, err := Fetch(src)
	if err != nil {
		return nil, err
	}
	return t.Select(src.Columns...)
}
