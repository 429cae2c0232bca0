package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/iwvelando/plantainpro/internal/metrics"
	"github.com/iwvelando/plantainpro/internal/session"
	"github.com/iwvelando/plantainpro/pkg/constants"
	"go.uber.org/zap"
)

func newTestHandler() (http.Handler, *session.Store) {
	store := session.NewStore(zap.NewNop(), metrics.DefaultAssumptions(), time.Hour)
	return NewHandler(zap.NewNop(), store, "test"), store
}

func serve(handler http.Handler, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			return c
		}
	}
	t.Fatal("expected a session cookie")
	return nil
}

func parseHTML(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

func fetchMetrics(t *testing.T, handler http.Handler, cookie *http.Cookie) metricsResponse {
	t.Helper()
	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/api/metrics", nil), cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp metricsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func postForm(handler http.Handler, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/assumptions", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(handler, req, cookie)
}

func postJSON(handler http.Handler, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/assumptions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(handler, req, cookie)
}

func TestDashboardPage(t *testing.T) {
	handler, store := newTestHandler()

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	sessionCookie(t, rr)
	if store.Len() != 1 {
		t.Fatalf("expected one session, got %d", store.Len())
	}

	doc := parseHTML(t, rr)

	if got := doc.Find(".card").Length(); got != 6 {
		t.Fatalf("expected 6 cards, got %d", got)
	}
	values := doc.Find(".card .card-value").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
	expected := []string{"1,000kg", "12 employees", "₦28.0M", "₦15.00M", "2,917kg/month", "1.00x"}
	for i, want := range expected {
		if values[i] != want {
			t.Errorf("card %d value = %q, expected %q", i, values[i], want)
		}
	}

	if got := strings.TrimSpace(doc.Find("a.tab.active").Text()); got != "Business Analysis" {
		t.Errorf("active tab = %q", got)
	}

	inputs := []struct {
		name, value, min, max, step string
	}{
		{"dailyCapacity", "1000", "100", "", "100"},
		{"sellingPrice", "2000", "1000", "", "100"},
		{"currencyDepreciationFactor", "1", "0.5", "3", "0.1"},
	}
	for _, tt := range inputs {
		input := doc.Find("input[name=" + tt.name + "]")
		if input.Length() != 1 {
			t.Fatalf("missing input %s", tt.name)
		}
		if got := input.AttrOr("value", ""); got != tt.value {
			t.Errorf("%s value = %q, expected %q", tt.name, got, tt.value)
		}
		if got := input.AttrOr("min", ""); got != tt.min {
			t.Errorf("%s min = %q, expected %q", tt.name, got, tt.min)
		}
		if got := input.AttrOr("max", ""); got != tt.max {
			t.Errorf("%s max = %q, expected %q", tt.name, got, tt.max)
		}
		if got := input.AttrOr("step", ""); got != tt.step {
			t.Errorf("%s step = %q, expected %q", tt.name, got, tt.step)
		}
	}

	if got := doc.Find("#projection .bar-group").Length(); got != 4 {
		t.Errorf("expected 4 chart quarters, got %d", got)
	}
	if got := doc.Find("#progression tbody tr").Length(); got != 4 {
		t.Errorf("expected 4 progression rows, got %d", got)
	}
	if got := doc.Find("#capital .capital-line").Length(); got != 3 {
		t.Errorf("expected 3 capital lines, got %d", got)
	}
	if doc.Find(".warnings").Length() != 0 {
		t.Error("expected no warnings for default inputs")
	}
}

func TestDashboardUnknownPath(t *testing.T) {
	handler, _ := newTestHandler()

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/missing", nil), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestFormSubmitRecomputes(t *testing.T) {
	handler, _ := newTestHandler()
	cookie := sessionCookie(t, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), nil))

	rr := postForm(handler, url.Values{"sellingPrice": {"2500"}, "dailyCapacity": {""}}, cookie)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d: %s", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	resp := fetchMetrics(t, handler, cookie)
	if resp.Assumptions.SellingPrice != 2500 || resp.Assumptions.DailyCapacity != 1000 {
		t.Fatalf("unexpected assumptions %+v", resp.Assumptions)
	}
	if resp.Derived.MonthlyRevenue == nil || *resp.Derived.MonthlyRevenue != 18750000 {
		t.Fatalf("expected monthly revenue 18750000, got %v", resp.Derived.MonthlyRevenue)
	}

	doc := parseHTML(t, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), cookie))
	if got := doc.Find("input[name=sellingPrice]").AttrOr("value", ""); got != "2500" {
		t.Errorf("expected edited price on page, got %q", got)
	}
}

func TestFormRejectsInvalidNumbers(t *testing.T) {
	handler, _ := newTestHandler()
	cookie := sessionCookie(t, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), nil))

	for _, raw := range []string{"Inf", "-Inf", "NaN", "abc", "1e400"} {
		t.Run(raw, func(t *testing.T) {
			rr := postForm(handler, url.Values{"sellingPrice": {raw}}, cookie)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
		})
	}

	if resp := fetchMetrics(t, handler, cookie); resp.Assumptions.SellingPrice != 2000 {
		t.Fatalf("rejected input changed the model: %+v", resp.Assumptions)
	}
}

func TestFormWarningsForHintViolations(t *testing.T) {
	handler, _ := newTestHandler()
	cookie := sessionCookie(t, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), nil))

	if rr := postForm(handler, url.Values{"dailyCapacity": {"50"}}, cookie); rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rr.Code)
	}

	doc := parseHTML(t, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), cookie))
	if doc.Find(".warnings li").Length() == 0 {
		t.Error("expected a warning for a capacity below the hint minimum")
	}
	if got := doc.Find("input[name=dailyCapacity]").AttrOr("value", ""); got != "50" {
		t.Errorf("expected the out-of-range value to be kept, got %q", got)
	}
}

func TestAPIAssumptions(t *testing.T) {
	handler, _ := newTestHandler()

	rr := postJSON(handler, `{"dailyCapacity": 2000}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	cookie := sessionCookie(t, rr)

	var resp metricsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Session != cookie.Value {
		t.Errorf("session id %q does not match cookie %q", resp.Session, cookie.Value)
	}
	if resp.Derived.StaffCount != 16 {
		t.Errorf("expected 16 staff, got %d", resp.Derived.StaffCount)
	}
	if resp.Assumptions.SellingPrice != 2000 {
		t.Errorf("untouched field changed: %+v", resp.Assumptions)
	}
	if len(resp.View.Cards) != 6 {
		t.Errorf("expected 6 cards in view, got %d", len(resp.View.Cards))
	}

	if again := fetchMetrics(t, handler, cookie); again.Assumptions.DailyCapacity != 2000 {
		t.Errorf("edit was not kept in the session: %+v", again.Assumptions)
	}
}

func TestAPIBreakEvenNotApplicable(t *testing.T) {
	handler, _ := newTestHandler()

	rr := postJSON(handler, `{"sellingPrice": 800}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if body := rr.Body.String(); strings.Contains(body, "Inf") || strings.Contains(body, "NaN") {
		t.Fatalf("non-finite value leaked into response: %s", body)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	derived, ok := raw["derived"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing derived block: %v", raw)
	}
	if v, present := derived["breakEvenPoint"]; !present || v != nil {
		t.Errorf("expected null break-even point, got %v", v)
	}
}

func TestAPIAssumptionsRejected(t *testing.T) {
	handler, _ := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"derived field", `{"staffCount": 3}`},
		{"wrong type", `{"sellingPrice": "cheap"}`},
		{"malformed", `{"sellingPrice":`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(handler, tt.body, nil)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp["error"] == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestAPIAssumptionsTooLarge(t *testing.T) {
	handler, _ := newTestHandler()

	body := `{"sellingPrice": 2000` + strings.Repeat(" ", maxRequestBodyBytes) + `}`
	rr := postJSON(handler, body, nil)
	if rr.Code != http.StatusRequestEntityTooLarge && rr.Code != http.StatusBadRequest {
		t.Fatalf("expected the oversized body to be rejected, got %d", rr.Code)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	handler, _ := newTestHandler()

	first := sessionCookie(t, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), nil))
	second := sessionCookie(t, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil), nil))
	if first.Value == second.Value {
		t.Fatal("expected distinct sessions")
	}

	if rr := postJSON(handler, `{"currencyDepreciationFactor": 1.5}`, first); rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	if got := fetchMetrics(t, handler, second).Assumptions.CurrencyDepreciationFactor; got != 1 {
		t.Errorf("edit leaked into another session: factor = %v", got)
	}
	if got := fetchMetrics(t, handler, first).Assumptions.CurrencyDepreciationFactor; got != 1.5 {
		t.Errorf("edit lost: factor = %v", got)
	}
}

func TestResearchPage(t *testing.T) {
	handler, _ := newTestHandler()

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/research", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	doc := parseHTML(t, rr)

	if got := doc.Find("#research h1").Text(); got != "Business Case Development for Plantain Flour Production Factory" {
		t.Errorf("research title = %q", got)
	}
	if doc.Find("#research table tbody tr").Length() == 0 {
		t.Error("expected the research timeline table")
	}
	if got := strings.TrimSpace(doc.Find("a.tab.active").Text()); got != "Research Proposal" {
		t.Errorf("active tab = %q", got)
	}
}

func TestFactoryPage(t *testing.T) {
	handler, _ := newTestHandler()

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/factory", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	doc := parseHTML(t, rr)

	if got := doc.Find("#software .software").Length(); got != 4 {
		t.Errorf("expected 4 software entries, got %d", got)
	}
	if got := doc.Find("#layout tbody tr").Length(); got != 6 {
		t.Errorf("expected 6 layout rows, got %d", got)
	}
	if got := doc.Find("#process li").Length(); got != 4 {
		t.Errorf("expected 4 process steps, got %d", got)
	}
}

func TestReferencesPage(t *testing.T) {
	handler, _ := newTestHandler()

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/references", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	doc := parseHTML(t, rr)

	if got := doc.Find(".reference").Length(); got != 10 {
		t.Errorf("expected 10 references, got %d", got)
	}
	if href := doc.Find(".reference a.external").First().AttrOr("href", ""); href != "https://doi.org/10.1016/j.jaed.2021.03.012" {
		t.Errorf("first reference link = %q", href)
	}
	if doc.Find(`a[href="/references/bibtex"]`).Length() != 1 {
		t.Error("expected a BibTeX download link")
	}
}

func TestBibTeXDownload(t *testing.T) {
	handler, _ := newTestHandler()

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/references/bibtex", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/x-bibtex") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "attachment") {
		t.Error("expected an attachment disposition")
	}
	if !strings.Contains(rr.Body.String(), "@article{adebayo2021,") {
		t.Errorf("unexpected bibliography:\n%s", rr.Body.String())
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "  v1.2.3  ")

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/api/version", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "v1.2.3" {
		t.Fatalf("expected version v1.2.3, got %q", resp["version"])
	}
}

func TestHandleVersionDefault(t *testing.T) {
	handler := NewHandler(nil, nil, "")

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/api/version", nil), nil)
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "dev" {
		t.Fatalf("expected version dev, got %q", resp["version"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/"},
		{http.MethodPost, "/research"},
		{http.MethodDelete, "/factory"},
		{http.MethodPut, "/references"},
		{http.MethodPost, "/references/bibtex"},
		{http.MethodGet, "/assumptions"},
		{http.MethodPost, "/api/metrics"},
		{http.MethodGet, "/api/assumptions"},
		{http.MethodPost, "/api/version"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(handler, httptest.NewRequest(tt.method, tt.path, nil), nil)
			if rr.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected status 405, got %d", rr.Code)
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	handler, _ := newTestHandler()

	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/static/style.css", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), ".card") {
		t.Error("unexpected stylesheet contents")
	}
}
