package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/health", "200", time.Millisecond)
	m.ApiInflightInc()
	m.IncAlertRaised("self_harm_mention", "high")
	m.AddXP("3", 50)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestMetricsExposition(t *testing.T) {
	m := newMetrics()
	m.ObserveAPI("POST", "/api/journals", "201", 20*time.Millisecond)
	m.ObserveAPI("POST", "/api/journals", "500", 20*time.Millisecond)
	m.IncAlertRaised("self_harm_mention", "high")
	m.IncAlertRaised("self_harm_mention", "high")
	m.AddXP("2", 150)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`yc_api_requests_total{method="POST",route="/api/journals",status="201"} 1.000000`,
		`yc_api_server_errors_total 1.000000`,
		`yc_alerts_raised_total{type="self_harm_mention",severity="high"} 2.000000`,
		`yc_xp_awarded_total{level="2"} 150.000000`,
		`yc_api_request_duration_seconds_bucket{method="POST",route="/api/journals",le="0.025"} 2`,
		`yc_api_request_duration_seconds_count{method="POST",route="/api/journals"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route"}, []string{`/a"b\c`})
	want := `{route="/a\"b\\c"}`
	if got != want {
		t.Fatalf("labelString: got=%s want=%s", got, want)
	}
}

func TestParseHeaders(t *testing.T) {
	got := parseHeaders(" api-key = abc ,broken, x=1,=y")
	if len(got) != 2 || got["api-key"] != "abc" || got["x"] != "1" {
		t.Fatalf("parseHeaders: got=%v", got)
	}
	if parseHeaders("") != nil {
		t.Fatalf("parseHeaders(\"\") should be nil")
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := NewHistogramVec("lat", "latency", []string{"route"}, []float64{1, 0.1})
	for _, v := range []float64{0.05, 0.1, 0.5, 3} {
		h.Observe(v, "/x")
	}
	var buf bytes.Buffer
	if err := h.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`lat_bucket{route="/x",le="0.1"} 2`,
		`lat_bucket{route="/x",le="1"} 3`,
		`lat_bucket{route="/x",le="+Inf"} 4`,
		`lat_count{route="/x"} 4`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q:\n%s", want, out)
		}
	}
}

func TestUnlabelledSeriesScrapeAtZero(t *testing.T) {
	c := NewCounter("c_total", "c")
	var buf bytes.Buffer
	if err := c.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	if !strings.Contains(buf.String(), "c_total 0.000000") {
		t.Fatalf("exposition: got=%q want c_total 0.000000", buf.String())
	}
	c.Add(-3)
	c.Inc()
	if got := c.Value(); got != 1 {
		t.Fatalf("Value: got=%v want=1", got)
	}
}
