package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/iwvelando/plantainpro/internal/config"
	"github.com/iwvelando/plantainpro/internal/dashboard"
	"github.com/iwvelando/plantainpro/internal/metrics"
	"github.com/iwvelando/plantainpro/internal/server"
	"github.com/iwvelando/plantainpro/internal/session"
	"github.com/iwvelando/plantainpro/pkg/output"
	"go.uber.org/zap"
)

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	start := time.Now()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	model := metrics.NewModel(zap.NewNop(), conf.Assumptions)
	for i := 0; i < 1000; i++ {
		capacity := float64(1000 + 100*(i%50))
		model.SetDailyCapacity(capacity)
	}
	editTime := time.Since(start)

	start = time.Now()
	view := dashboard.Build(model.Snapshot())
	csvReport := output.CsvString(view)
	renderTime := time.Since(start)

	totalTime := loadTime + editTime + renderTime

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  1000 edits: %v", editTime)
	t.Logf("  Build and render: %v", renderTime)
	t.Logf("  Total time: %v", totalTime)

	if totalTime > 5*time.Second {
		t.Errorf("Total processing time %v exceeds 5 second threshold", totalTime)
	}
	if model.Recomputations() != 1001 {
		t.Errorf("expected 1001 recomputations, got %d", model.Recomputations())
	}
	if csvReport == "" {
		t.Error("expected a CSV report")
	}
}

// TestDataConsistency validates that multiple runs produce identical results
func TestDataConsistency(t *testing.T) {
	var first dashboard.View

	for run := 0; run < 3; run++ {
		conf, err := config.LoadConfiguration("../test_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfiguration failed on run %d: %v", run, err)
		}

		view := dashboard.Build(metrics.NewModel(zap.NewNop(), conf.Assumptions).Snapshot())
		if run == 0 {
			first = view
			continue
		}
		if !reflect.DeepEqual(view, first) {
			t.Errorf("Run %d produced a different report", run)
		}
	}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

type apiMetrics struct {
	Session     string                      `json:"session"`
	Assumptions metrics.BusinessAssumptions `json:"assumptions"`
	Derived     struct {
		StaffCount     int      `json:"staffCount"`
		MonthlyRevenue *float64 `json:"monthlyRevenue"`
	} `json:"derived"`
}

func getMetrics(client *http.Client, baseURL string) (apiMetrics, error) {
	var m apiMetrics
	resp, err := client.Get(baseURL + "/api/metrics")
	if err != nil {
		return m, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return m, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(&m)
	return m, err
}

func postAssumptions(client *http.Client, baseURL string, update metrics.AssumptionUpdate) (apiMetrics, error) {
	var m apiMetrics
	body, err := json.Marshal(update)
	if err != nil {
		return m, err
	}
	resp, err := client.Post(baseURL+"/api/assumptions", "application/json", bytes.NewReader(body))
	if err != nil {
		return m, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return m, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(&m)
	return m, err
}

// TestServerSessions runs several visitors against a live server. Each keeps
// its own edits and the derived figures always match its assumptions.
func TestServerSessions(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	store := session.NewStore(zap.NewNop(), conf.Assumptions, time.Hour)
	ts := httptest.NewServer(server.NewHandler(zap.NewNop(), store, "integration"))
	defer ts.Close()

	const visitors = 8
	var wg sync.WaitGroup
	errs := make(chan error, visitors)

	for i := 0; i < visitors; i++ {
		client := newClient(t)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			initial, err := getMetrics(client, ts.URL)
			if err != nil {
				errs <- fmt.Errorf("visitor %d: %w", i, err)
				return
			}
			if initial.Assumptions != conf.Assumptions {
				errs <- fmt.Errorf("visitor %d: new session did not start from configured defaults: %+v", i, initial.Assumptions)
				return
			}

			capacity := float64(500 * (i + 1))
			for j := 0; j < 5; j++ {
				if _, err := postAssumptions(client, ts.URL, metrics.AssumptionUpdate{DailyCapacity: &capacity}); err != nil {
					errs <- fmt.Errorf("visitor %d: %w", i, err)
					return
				}
			}

			final, err := getMetrics(client, ts.URL)
			if err != nil {
				errs <- fmt.Errorf("visitor %d: %w", i, err)
				return
			}
			if final.Session != initial.Session {
				errs <- fmt.Errorf("visitor %d: session changed between requests", i)
				return
			}
			if final.Assumptions.DailyCapacity != capacity {
				errs <- fmt.Errorf("visitor %d: capacity = %v, expected %v", i, final.Assumptions.DailyCapacity, capacity)
				return
			}
			if final.Derived.StaffCount != metrics.StaffCount(capacity) {
				errs <- fmt.Errorf("visitor %d: staff = %d, expected %d", i, final.Derived.StaffCount, metrics.StaffCount(capacity))
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	if store.Len() != visitors {
		t.Errorf("expected %d sessions, got %d", visitors, store.Len())
	}
}
