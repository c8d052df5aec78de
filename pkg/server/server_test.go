package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mlehnert/placard/pkg/layout"
	"github.com/mlehnert/placard/pkg/pipeline"
	"github.com/mlehnert/placard/pkg/store"
)

const sceneBody = `{
  "canvas": {"width": 800, "height": 600, "padding": 0.1},
  "boxes": [
    {"id": "a", "label": "A", "x": 0, "y": 0, "width": 3, "height": 1},
    {"id": "b", "label": "B", "x": 0, "y": 0.5, "width": 3, "height": 1}
  ]
}`

func testServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, logger)
	t.Cleanup(runner.Close)

	srv := httptest.NewServer(New(runner, st, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestComputeLayoutJSON(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Post(srv.URL+"/v1/layouts", "application/json", strings.NewReader(sceneBody))
	if err != nil {
		t.Fatalf("POST /v1/layouts: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body: %s", resp.StatusCode, body)
	}

	var l layout.Layout
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(l.Boxes) != 2 {
		t.Fatalf("box count = %d, want 2", len(l.Boxes))
	}
	if !l.Boxes[1].Displaced || l.Boxes[1].Y != 1.1 {
		t.Errorf("box b = %+v, want displaced to y=1.1", l.Boxes[1])
	}
}

func TestComputeLayoutSVG(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Post(srv.URL+"/v1/layouts?format=svg&ghosts=true", "application/json", strings.NewReader(sceneBody))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("<svg")) {
		t.Error("response is not SVG")
	}
	if !bytes.Contains(body, []byte("stroke-dasharray")) {
		t.Error("ghosts=true did not render ghost outlines")
	}
}

func TestComputeLayoutBadRequests(t *testing.T) {
	srv := testServer(t, nil)

	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
	}{
		{"malformed body", "/v1/layouts", "{", http.StatusBadRequest},
		{"unknown format", "/v1/layouts?format=gif", sceneBody, http.StatusBadRequest},
		{"invalid scene", "/v1/layouts", `{"canvas": {"width": 0, "height": 0}, "boxes": []}`, http.StatusUnprocessableEntity},
		{
			"invalid dimension",
			"/v1/layouts",
			`{"canvas": {"width": 100, "height": 100}, "boxes": [{"label": "x", "x": 0, "y": 0, "width": -1, "height": 1}]}`,
			http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tt.url, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				body, _ := io.ReadAll(resp.Body)
				t.Errorf("status = %d, want %d (body: %s)", resp.StatusCode, tt.wantStatus, body)
			}
		})
	}
}

func TestDocumentLifecycle(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	srv := testServer(t, st)

	// Create
	reqBody := `{"name": "deck one", "scene": ` + sceneBody + `}`
	resp, err := http.Post(srv.URL+"/v1/documents", "application/json", strings.NewReader(reqBody))
	if err != nil {
		t.Fatalf("POST /v1/documents: %v", err)
	}
	var doc store.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	if doc.ID == "" || doc.Name != "deck one" || len(doc.Layout.Boxes) != 2 {
		t.Fatalf("document = %+v", doc)
	}

	// Get
	resp, err = http.Get(srv.URL + "/v1/documents/" + doc.ID)
	if err != nil {
		t.Fatalf("GET document: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d, want 200", resp.StatusCode)
	}

	// List
	resp, err = http.Get(srv.URL + "/v1/documents")
	if err != nil {
		t.Fatalf("GET documents: %v", err)
	}
	var docs []store.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	if len(docs) != 1 {
		t.Errorf("list length = %d, want 1", len(docs))
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/documents/"+doc.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	// Get after delete
	resp, err = http.Get(srv.URL + "/v1/documents/" + doc.ID)
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get-after-delete status = %d, want 404", resp.StatusCode)
	}
}

func TestDocumentsWithoutStore(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Get(srv.URL + "/v1/documents")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}
