package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/osprey-dev/namesift/pkg/fallback"
	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/pipeline"
	"github.com/osprey-dev/namesift/pkg/provider"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	stage := pipeline.Stage{
		Label:     "Stub",
		Platforms: "Test",
		StartPct:  15,
		EndPct:    25,
		Providers: []provider.Provider{provider.Func{
			Label: "stub",
			Cat:   hit.CategoryGeneral,
			Fn: func(context.Context, string) ([]hit.RawHit, error) {
				return nil, hit.ErrNoResults
			},
		}},
	}
	pipe := pipeline.New(nil, pipeline.WithStages([]pipeline.Stage{stage}))
	return New(pipe)
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}
	if got := decodeBody(t, rec)["status"]; got != "healthy" {
		t.Errorf("status = %v, want healthy", got)
	}
}

func TestRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "running" || body["version"] != Version {
		t.Errorf("GET / body = %v", body)
	}
}

func TestSearchByName(t *testing.T) {
	rec := postForm(t, testServer(t).Handler(), "/search", url.Values{"name": {"Jane Doe"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /search = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" {
		t.Errorf("status = %v, want success", body["status"])
	}
	results, ok := body["results"].([]any)
	if !ok || len(results) < fallback.PipelineFloor {
		t.Errorf("results = %d entries, want at least %d", len(results), fallback.PipelineFloor)
	}
	if int(body["total_results"].(float64)) != len(results) {
		t.Errorf("total_results = %v disagrees with results length %d", body["total_results"], len(results))
	}
	if body["enhanced_used"] != false {
		t.Errorf("enhanced_used = %v, want false", body["enhanced_used"])
	}
}

func TestSearchNoInputs(t *testing.T) {
	rec := postForm(t, testServer(t).Handler(), "/search", url.Values{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /search without inputs = %d, want 422", rec.Code)
	}
}

func TestSearchRejectsNonImageUpload(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("just text")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/search", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	testServer(t).Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /search with text upload = %d, want 422", rec.Code)
	}
}

func TestSearchRejectsEmptyUpload(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	if _, err := mw.CreatePart(header); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/search", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	testServer(t).Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /search with empty upload = %d, want 422", rec.Code)
	}
}

func TestSearchWithImageUpload(t *testing.T) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "Jane Doe"); err != nil {
		t.Fatal(err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	fw, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(img.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/search", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	testServer(t).Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /search with image = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
}

func TestSearchStream(t *testing.T) {
	rec := postForm(t, testServer(t).Handler(), "/search-stream", url.Values{"name": {"Jane Doe"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /search-stream = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	var progress, complete int
	for line := range strings.Lines(rec.Body.String()) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatalf("bad event %q: %v", line, err)
		}
		switch ev.Type {
		case "progress":
			progress++
		case "complete":
			complete++
		default:
			t.Errorf("unexpected event type %q", ev.Type)
		}
	}
	if progress == 0 {
		t.Error("no progress events streamed")
	}
	if complete != 1 {
		t.Errorf("complete events = %d, want exactly 1", complete)
	}
}

func TestActivitiesDefaults(t *testing.T) {
	rec := postForm(t, testServer(t).Handler(), "/search-activities", url.Values{"name": {"Jane Doe"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /search-activities = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	platforms, ok := body["platforms_searched"].([]any)
	if !ok || len(platforms) != 4 {
		t.Errorf("platforms_searched = %v, want the 4 defaults", body["platforms_searched"])
	}
	activities, ok := body["activities"].([]any)
	if !ok || len(activities) == 0 {
		t.Fatal("no activities returned")
	}
	if int(body["total_activities"].(float64)) != len(activities) {
		t.Errorf("total_activities = %v disagrees with list length %d", body["total_activities"], len(activities))
	}
}

func TestActivitiesRequiresName(t *testing.T) {
	rec := postForm(t, testServer(t).Handler(), "/search-activities", url.Values{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /search-activities without name = %d, want 422", rec.Code)
	}
}

func TestComprehensiveRequiresName(t *testing.T) {
	rec := postForm(t, testServer(t).Handler(), "/search-google-comprehensive", url.Values{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /search-google-comprehensive without name = %d, want 422", rec.Code)
	}
}

func TestComprehensiveRejectsBadLimit(t *testing.T) {
	rec := postForm(t, testServer(t).Handler(), "/search-google-comprehensive",
		url.Values{"name": {"Jane Doe"}, "max_results": {"minus-one"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST with bad max_results = %d, want 422", rec.Code)
	}
}
