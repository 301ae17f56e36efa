package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"humandesign/internal/domain"
	"humandesign/internal/genekeys"
	"humandesign/internal/storage/memory"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	store := memory.NewGeneKeyStore()
	if err := store.Insert(context.Background(), &domain.GeneKey{Gate: 7, Name: "seeded", Meaning: "direction"}); err != nil {
		t.Fatalf("seed gene key: %v", err)
	}
	srv := NewServer(Options{
		GeneKeys:  genekeys.NewLoader("", store, nil),
		Audits:    memory.NewChartAuditStore(),
		Precision: domain.PrecisionAnalytic,
	})
	return srv, srv.Routes()
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestCalculateSuccess(t *testing.T) {
	_, h := newTestServer(t)

	rec := postJSON(t, h, "/calculate_hd", `{"year":1990,"month":5,"day":15,"time":"14:30","timezone":"Asia/Taipei","longitude":121.5,"latitude":25.0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["status"] != "success" {
		t.Fatalf("status field = %v", body["status"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data missing: %v", body)
	}
	if data["input_date"] != "1990-05-15 14:30" {
		t.Errorf("input_date = %v", data["input_date"])
	}
	personality, ok := data["personality_list"].([]interface{})
	if !ok || len(personality) != len(domain.Bodies) {
		t.Errorf("personality_list has %d entries", len(personality))
	}
	if data["type"] == "" || data["authority"] == "" {
		t.Errorf("analysis fields missing: %v", data)
	}
}

func TestCalculateMissingFields(t *testing.T) {
	_, h := newTestServer(t)

	rec := postJSON(t, h, "/calculate_hd", `{"year":1990,"month":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "day") || !strings.Contains(msg, "time") {
		t.Errorf("error should name missing fields, got %q", msg)
	}
	if strings.Contains(msg, "year") || strings.Contains(msg, "month") {
		t.Errorf("error names fields that were present: %q", msg)
	}
}

func TestCalculateBadInput(t *testing.T) {
	_, h := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"non-numeric year", `{"year":"abc","month":5,"day":15,"time":"14:30"}`},
		{"bad time format", `{"year":1990,"month":5,"day":15,"time":"1430"}`},
		{"hour out of range", `{"year":1990,"month":5,"day":15,"time":"25:00"}`},
		{"minute out of range", `{"year":1990,"month":5,"day":15,"time":"14:61"}`},
		{"month out of range", `{"year":1990,"month":13,"day":15,"time":"14:30"}`},
		{"not json", `year=1990`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h, "/calculate_hd", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			body := decodeBody(t, rec)
			if body["status"] != "error" {
				t.Errorf("status field = %v", body["status"])
			}
		})
	}
}

func TestCalculateAuditRecorded(t *testing.T) {
	audits := memory.NewChartAuditStore()
	srv := NewServer(Options{Audits: audits, Precision: domain.PrecisionAnalytic})
	h := srv.Routes()

	rec := postJSON(t, h, "/calculate_hd", `{"year":2000,"month":1,"day":1,"time":"00:00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	recent, err := audits.GetRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(recent))
	}

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	if recent[0].ChartID != data["chart_id"] {
		t.Errorf("audit chart id %q != chart id %v", recent[0].ChartID, data["chart_id"])
	}
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
	if body["message"] != "Human Design API is running" {
		t.Errorf("message = %v", body["message"])
	}
	centers, _ := body["centers"].([]interface{})
	if len(centers) != 9 {
		t.Errorf("centers has %d entries", len(centers))
	}
	planets, _ := body["planets"].([]interface{})
	if len(planets) != len(domain.Bodies) {
		t.Errorf("planets has %d entries", len(planets))
	}
}

func TestGeneKeyLookup(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/api/gene_key/7")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["name"] != "seeded" {
		t.Errorf("name = %v", body["name"])
	}
}

func TestGeneKeyNotFound(t *testing.T) {
	_, h := newTestServer(t)

	for _, path := range []string{"/api/gene_key/8", "/api/gene_key/999"} {
		rec := get(t, h, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", path, rec.Code)
			continue
		}
		body := decodeBody(t, rec)
		if body["error"] != "Data not found" {
			t.Errorf("%s: error = %v", path, body["error"])
		}
	}
}

func TestGeneKeyBadGate(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/api/gene_key/abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	_, h := newTestServer(t)

	postJSON(t, h, "/calculate_hd", `{"year":2000,"month":1,"day":1,"time":"12:00"}`)

	rec := get(t, h, "/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "running" {
		t.Errorf("status = %v", body["status"])
	}
	if body["charts_computed"] != float64(1) {
		t.Errorf("charts_computed = %v", body["charts_computed"])
	}
}

func TestCORSHeaders(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/health")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req := httptest.NewRequest(http.MethodOptions, "/calculate_hd", nil)
	pre := httptest.NewRecorder()
	h.ServeHTTP(pre, req)
	if pre.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", pre.Code)
	}
}
