package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		t.Fatal(err)
	}

	c.OnFrame(solidFrame(10, 0.02), time.Millisecond)
	c.OnFrame(solidFrame(10, 0.04), time.Millisecond)
	if got := testutil.ToFloat64(c.Frames); got != 2 {
		t.Errorf("frames_total = %v", got)
	}
	if got := testutil.ToFloat64(c.TimeOffset); got != 0.04 {
		t.Errorf("time_offset = %v", got)
	}

	c.OnSeed(42)
	if got := testutil.ToFloat64(c.SeedChanges); got != 1 {
		t.Errorf("seed_changes_total = %v", got)
	}
	if got := testutil.ToFloat64(c.TimeOffset); got != 0 {
		t.Errorf("time_offset after seed = %v", got)
	}
}

func TestCollectorDoubleRegister(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		t.Fatal(err)
	}
	if err := c.Register(reg); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		t.Fatal(err)
	}
	c.OnFrame(solidFrame(1, 0.5), time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "perlinlab_frames_total 1") {
		t.Errorf("frames counter missing from exposition:\n%s", body)
	}
}
