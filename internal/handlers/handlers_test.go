package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"manzily/internal/catalog"
	"manzily/internal/listing"
	"manzily/internal/ratelimit"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T, rl *ratelimit.RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed() returned unexpected error: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	submitter := listing.NewSubmitter(cat.Types(), listing.DiscardSink{}, logger)
	h := NewPropertyHandler(cat, submitter, logger)

	return NewRouter(h, RouterConfig{RateLimiter: rl, Logger: logger})
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Count      int               `json:"count"`
	Properties []json.RawMessage `json:"properties"`
	Ignored    []string          `json:"ignored"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) (listResponse, []string) {
	t.Helper()
	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v: %s", err, w.Body.String())
	}
	ids := make([]string, len(resp.Properties))
	for i, raw := range resp.Properties {
		var p struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			t.Fatal(err)
		}
		ids[i] = p.ID
	}
	return resp, ids
}

func TestHealthCheck(t *testing.T) {
	w := do(setupRouter(t, nil), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("GET /health = %d %s", w.Code, w.Body.String())
	}
}

func TestListProperties(t *testing.T) {
	w := do(setupRouter(t, nil), http.MethodGet, "/api/properties", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp, ids := decodeList(t, w)
	if resp.Count != 8 || strings.Join(ids, ",") != "1,2,3,4,5,6,7,8" {
		t.Errorf("count = %d, ids = %v", resp.Count, ids)
	}
}

func TestGetProperty(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/api/properties/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Property struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Display struct {
				Price string `json:"price"`
			} `json:"display"`
		} `json:"property"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Property.Title != "Modern Downtown Apartment" || resp.Property.Display.Price != "$2,500/month" {
		t.Errorf("property = %+v", resp.Property)
	}

	w = do(r, http.MethodGet, "/api/properties/999", "")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Property not found") {
		t.Errorf("GET /api/properties/999 = %d %s", w.Code, w.Body.String())
	}
}

func TestFilterProperties(t *testing.T) {
	r := setupRouter(t, nil)

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"no filter", "", "1,2,3,4,5,6,7,8"},
		{"for rent", "availability=for_rent", "1,4,7,8"},
		{"search text", "q=riverside", "5,7"},
		{"search alias", "search=DOWNTOWN", "1"},
		{"combined", "q=riverside&availability=for_rent", "7"},
		{"price range", "min_price=300000&max_price=800000", "2,3,5"},
		{"rooms", "min_rooms=4", "2,6,7"},
		{"type", "type=condo", "3,8"},
		{"rent tab", "search_type=rent&max_price=2500", "1,4,8"},
		{"explicit all beats tab", "search_type=buy&availability=all&max_rooms=1", "4"},
		{"no match", "min_price=5000000", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/filter?"+tc.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}
			resp, ids := decodeList(t, w)
			if got := strings.Join(ids, ","); got != tc.want {
				t.Errorf("ids = %q, want %q", got, tc.want)
			}
			if resp.Count != len(ids) {
				t.Errorf("count = %d, want %d", resp.Count, len(ids))
			}
		})
	}
}

func TestFilterIgnoresUnparseableBounds(t *testing.T) {
	w := do(setupRouter(t, nil), http.MethodGet, "/api/filter?min_price=abc&max_rooms=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp, ids := decodeList(t, w)
	if strings.Join(resp.Ignored, ",") != "min_price" {
		t.Errorf("ignored = %v, want [min_price]", resp.Ignored)
	}
	if strings.Join(ids, ",") != "4,8" {
		t.Errorf("ids = %v, want [4 8]", ids)
	}
}

func TestFilterRejectsUnknownSelectors(t *testing.T) {
	r := setupRouter(t, nil)
	for _, query := range []string{"availability=swap", "type=castle"} {
		if w := do(r, http.MethodGet, "/api/filter?"+query, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET /api/filter?%s = %d, want 400", query, w.Code)
		}
	}
}

func TestGetFilterOptions(t *testing.T) {
	w := do(setupRouter(t, nil), http.MethodGet, "/api/filter/options", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Count int `json:"count"`
		Price struct {
			Min int64 `json:"min"`
			Max int64 `json:"max"`
		} `json:"price"`
		Availabilities []struct {
			Value string `json:"value"`
			Count int    `json:"count"`
		} `json:"availabilities"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 8 || resp.Price.Min != 950 || resp.Price.Max != 1250000 {
		t.Errorf("options = %+v", resp)
	}
	if len(resp.Availabilities) != 2 || resp.Availabilities[0].Count+resp.Availabilities[1].Count != 8 {
		t.Errorf("availabilities = %+v", resp.Availabilities)
	}
}

func TestGetStats(t *testing.T) {
	w := do(setupRouter(t, nil), http.MethodGet, "/api/stats", "")
	var stats catalog.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Total != 8 || stats.ByAvailability["for_rent"] != 4 || stats.ByType["villa"] != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCreateProperty(t *testing.T) {
	r := setupRouter(t, nil)

	cases := []struct {
		name   string
		body   string
		status int
		expect string
	}{
		{"missing title", `{"title":"","address":"x","price":"100"}`, http.StatusUnprocessableEntity, `"missing_fields":["title"]`},
		{"missing everything", `{}`, http.StatusUnprocessableEntity, listing.MissingFieldsMessage},
		{"bad price", `{"title":"A","address":"B","price":"cheap"}`, http.StatusBadRequest, "invalid listing"},
		{"bad json", `{"title":`, http.StatusBadRequest, "error"},
		{"accepted", `{"title":"Loft","address":"9 Pier Rd","price":2500,"availability":"for_rent"}`, http.StatusAccepted, `"saved":false`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/properties", tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tc.status, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tc.expect) {
				t.Errorf("body %s does not contain %s", w.Body.String(), tc.expect)
			}
		})
	}
}

func TestCreatePropertyDoesNotChangeCatalog(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodPost, "/api/properties", `{"title":"Loft","address":"9 Pier Rd","price":"2500"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}

	resp, _ := decodeList(t, do(r, http.MethodGet, "/api/properties", ""))
	if resp.Count != 8 {
		t.Errorf("count after submission = %d, want 8", resp.Count)
	}
}

func TestCreatePropertyRateLimited(t *testing.T) {
	r := setupRouter(t, ratelimit.NewRateLimiter(1, 0, true))
	body := `{"title":"Loft","address":"9 Pier Rd","price":"2500"}`

	if w := do(r, http.MethodPost, "/api/properties", body); w.Code != http.StatusAccepted {
		t.Fatalf("first submission = %d, want 202", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/properties", body); w.Code != http.StatusTooManyRequests {
		t.Errorf("second submission = %d, want 429", w.Code)
	}

	w := do(r, http.MethodGet, "/api/ratelimit/stats", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"remaining_this_minute":0`) {
		t.Errorf("GET /api/ratelimit/stats = %d %s", w.Code, w.Body.String())
	}
}

func TestRequestLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cat, err := catalog.LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed() returned unexpected error: %v", err)
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := NewPropertyHandler(cat, listing.NewSubmitter(cat.Types(), nil, logger), logger)
	r := NewRouter(h, RouterConfig{LogRequests: true, Logger: logger})

	do(r, http.MethodGet, "/api/properties/999", "")

	var entry struct {
		Msg    string `json:"msg"`
		Method string `json:"method"`
		Path   string `json:"path"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not a single JSON line: %v: %q", err, buf.String())
	}
	if entry.Msg != "request" || entry.Method != http.MethodGet || entry.Path != "/api/properties/999" || entry.Status != http.StatusNotFound {
		t.Errorf("log entry = %+v", entry)
	}
}

func TestRequestLoggingDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cat, err := catalog.LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed() returned unexpected error: %v", err)
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := NewRouter(NewPropertyHandler(cat, listing.NewSubmitter(cat.Types(), nil, logger), logger), RouterConfig{Logger: logger})

	do(r, http.MethodGet, "/health", "")
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}
