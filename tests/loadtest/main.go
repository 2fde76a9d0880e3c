package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"slices"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numIDs       = 500
	numPageIDs   = 20
)

var (
	slots = []string{"viewedLeads", "viewedEvents"}
	zones = []string{"UTC", "America/Los_Angeles", "Europe/Berlin", "Mars/Base"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	latency  time.Duration
	failed   bool
}

// endpointStats is owned by one worker until the phase ends, then merged.
type endpointStats struct {
	count     int
	errors    int
	latencies []time.Duration
}

type phaseStats map[string]*endpointStats

func (ps phaseStats) add(r result) {
	s, ok := ps[r.endpoint]
	if !ok {
		s = &endpointStats{}
		ps[r.endpoint] = s
	}
	s.count++
	if r.failed {
		s.errors++
	}
	s.latencies = append(s.latencies, r.latency)
}

func (ps phaseStats) merge(other phaseStats) {
	for ep, o := range other {
		s, ok := ps[ep]
		if !ok {
			ps[ep] = o
			continue
		}
		s.count += o.count
		s.errors += o.errors
		s.latencies = append(s.latencies, o.latencies...)
	}
}

func main() {
	fmt.Println("=== LeadsDesk Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("IDs: %d | Slots: %d | Zones: %d\n\n", numIDs, len(slots), len(zones))

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Marking leads viewed (POST /viewed) ---")
	runPhase(testDuration, doMarkViewed)

	fmt.Println("\n--- Phase 2: Dashboard reads (GET /viewed, /storage, POST /unread) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doMarkViewed(rng)
		case r < 0.40:
			return doUnread(rng)
		case r < 0.60:
			return doGetViewed(rng)
		default:
			return doGetSlot(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Hours and delays (POST /hours/open, GET /delay) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doIsOpen(rng)
		}
		return doDelay(rng)
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	perWorker := make([]phaseStats, numWorkers)
	var wg sync.WaitGroup
	for i := range perWorker {
		perWorker[i] = phaseStats{}
		wg.Add(1)
		go func(own phaseStats, seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for ctx.Err() == nil {
				own.add(workFn(rng))
			}
		}(perWorker[i], time.Now().UnixNano()+int64(i))
	}
	wg.Wait()

	all := phaseStats{}
	for _, ps := range perWorker {
		all.merge(ps)
	}
	printResults(all, duration)
}

func printResults(all phaseStats, duration time.Duration) {
	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Endpoint\tReqs\tErrs\tAvg\tP50\tP95\tP99\t")

	var totalOps, totalErrors int
	for _, ep := range endpoints {
		s := all[ep]
		totalOps += s.count
		totalErrors += s.errors
		slices.Sort(s.latencies)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t\n", ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}
	tw.Flush()

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func doRequest(name, method, url string, body []byte, okStatus int) result {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return result{name, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Client-ID", "loadtest")

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{name, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{name, lat, resp.StatusCode != okStatus}
}

func randomSlot(rng *rand.Rand) string {
	return slots[rng.Intn(len(slots))]
}

func randomID(rng *rand.Rand) string {
	return fmt.Sprintf("id_%d", rng.Intn(numIDs)+1)
}

func doMarkViewed(rng *rand.Rand) result {
	data, _ := json.Marshal(map[string]string{"key": randomSlot(rng), "id": randomID(rng)})
	return doRequest("POST /viewed", http.MethodPost, baseURL+"/viewed", data, http.StatusOK)
}

func doGetViewed(rng *rand.Rand) result {
	return doRequest("GET /viewed", http.MethodGet, baseURL+"/viewed?key="+randomSlot(rng), nil, http.StatusOK)
}

func doGetSlot(rng *rand.Rand) result {
	return doRequest("GET /storage", http.MethodGet, baseURL+"/storage?key="+randomSlot(rng), nil, http.StatusOK)
}

func doUnread(rng *rand.Rand) result {
	ids := make([]string, numPageIDs)
	for i := range ids {
		ids[i] = randomID(rng)
	}
	data, _ := json.Marshal(map[string]interface{}{"key": randomSlot(rng), "total": numIDs, "ids": ids})
	return doRequest("POST /unread", http.MethodPost, baseURL+"/unread", data, http.StatusOK)
}

func doIsOpen(rng *rand.Rand) result {
	data, _ := json.Marshal(map[string]interface{}{
		"open":      []map[string]interface{}{{"day": rng.Intn(7), "start": "0800", "end": "2000"}},
		"time_zone": zones[rng.Intn(len(zones))],
	})
	return doRequest("POST /hours/open", http.MethodPost, baseURL+"/hours/open", data, http.StatusOK)
}

func doDelay(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/delay?seconds=%d", baseURL, rng.Int63n(10*86400))
	return doRequest("GET /delay", http.MethodGet, url, nil, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	return d.Round(10 * time.Microsecond).String()
}
