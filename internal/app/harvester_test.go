package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stationone-hq/stationone-menu/internal/config"
	"github.com/stationone-hq/stationone-menu/pkg/publishers"
)

func menuServer(t *testing.T) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		"/api/v1/category":                `{"data":[{"_id":"c1","title":"Drinks","image":"drinks.png"}]}`,
		"/api/v1/subcategory/category/c1": `{"data":[{"_id":"s1","title":"Coffee","category":"c1"}]}`,
		"/api/v1/product/cat/s1":          `{"data":[{"_id":"p1","title":"Latte","price":45,"subCategory":"s1"}]}`,
		"/api/v1/offers/slider":           `{"data":[]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.Error(w, `{"message":"Not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type sink struct {
	mu     sync.Mutex
	events []publishers.Event
}

func (s *sink) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode event: %v", err)
		}
		s.mu.Lock()
		s.events = append(s.events, evt)
		s.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (s *sink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func testConfig(t *testing.T, apiURL, sinkURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	pubFile := filepath.Join(dir, "publishers.yaml")
	raw := "publishers:\n  - id: hook\n    type: http\n    http:\n      url: " + sinkURL + "\n"
	if err := os.WriteFile(pubFile, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}
	return &config.Config{
		AppName:                    "stationone-menu",
		APIBaseURL:                 apiURL + "/api/v1",
		ImageBaseURL:               apiURL + "/uploads/",
		ProductsBySubCategoryRoute: "cat",
		HTTPTimeout:                2 * time.Second,
		PublishersFile:             pubFile,
		HarvestInterval:            time.Hour,
		StorageType:                "bbolt",
		BBoltPath:                  filepath.Join(dir, "menu.db"),
		StorageTTL:                 time.Hour,
		StorageCleanupInterval:     time.Hour,
	}
}

func TestHarvesterPublishesOnlyChangesAcrossPasses(t *testing.T) {
	api := menuServer(t)
	out := &sink{}
	sinkSrv := out.server(t)

	h, err := NewHarvester(context.Background(), testConfig(t, api.URL, sinkSrv.URL), nil)
	if err != nil {
		t.Fatalf("NewHarvester: %v", err)
	}
	defer h.close()

	if err := h.runOnce(context.Background()); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	// category + subcategory + product
	if got := out.count(); got != 3 {
		t.Fatalf("expected 3 events after first pass, got %d", got)
	}

	if err := h.runOnce(context.Background()); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if got := out.count(); got != 3 {
		t.Fatalf("expected no new events for an unchanged menu, got %d", got)
	}

	out.mu.Lock()
	first := out.events[0]
	out.mu.Unlock()
	if first.Kind != publishers.KindCategory || first.ImageURL != api.URL+"/uploads/drinks.png" || first.DeploymentID != "default" {
		t.Fatalf("unexpected first event %+v", first)
	}
}

func TestHarvesterRunStopsOnCancel(t *testing.T) {
	api := menuServer(t)
	out := &sink{}
	sinkSrv := out.server(t)

	cfg := testConfig(t, api.URL, sinkSrv.URL)
	cfg.StorageType = "none"
	h, err := NewHarvester(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewHarvester: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for out.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("initial pass did not publish")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestNewHarvesterRequiresPublishers(t *testing.T) {
	api := menuServer(t)
	cfg := testConfig(t, api.URL, "http://127.0.0.1:1")
	raw := "publishers:\n  - id: hook\n    type: http\n    enabled: false\n    http:\n      url: http://127.0.0.1:1\n"
	if err := os.WriteFile(cfg.PublishersFile, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}
	if _, err := NewHarvester(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error without enabled publishers")
	}
}
