package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAPIPlaysFullRun(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(t), time.Millisecond))
	defer server.Close()
	base := server.URL + "/api/players/p9"

	var view struct {
		Index int `json:"index"`
		Quote *struct {
			ID string `json:"id"`
		} `json:"quote"`
	}
	getJSON(t, base+"/today", &view)
	if view.Index != 0 || view.Quote == nil {
		t.Fatalf("expected fresh run, got %+v", view)
	}

	resp := post(t, base+"/share", "")
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected share to be GET only, got %d", resp.StatusCode)
	}
	if resp := get(t, base+"/share"); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 before completion, got %d", resp.StatusCode)
	}

	if resp := post(t, base+"/hints/1", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected hint ok, got %d", resp.StatusCode)
	}
	if resp := post(t, base+"/hints/7", ""); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad slot rejected, got %d", resp.StatusCode)
	}
	if resp := post(t, base+"/answers", `{"text":""}`); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected empty answer rejected, got %d", resp.StatusCode)
	}

	for i := 0; i < 5; i++ {
		getJSON(t, base+"/today", &view)
		body, _ := json.Marshal(map[string]string{"text": "answer " + view.Quote.ID})
		if resp := post(t, base+"/answers", string(body)); resp.StatusCode != http.StatusOK {
			t.Fatalf("answer %d: status %d", i, resp.StatusCode)
		}
	}

	resp = get(t, base+"/share")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected share after completion, got %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), "Perfect 5/5") || !strings.Contains(buf.String(), "Hints used: 1") {
		t.Fatalf("unexpected share text %q", buf.String())
	}

	png := get(t, base+"/share.png")
	if png.StatusCode != http.StatusOK || png.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("expected png share image, got %d %s", png.StatusCode, png.Header.Get("Content-Type"))
	}

	if resp := post(t, base+"/answers", `{"text":"again"}`); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected completed run to reject answers, got %d", resp.StatusCode)
	}

	var items []map[string]any
	getJSON(t, base+"/yesterday", &items)
	if len(items) != 0 {
		t.Fatalf("expected no yesterday reveal, got %v", items)
	}
}

func TestHealthz(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(t), 0))
	defer server.Close()
	if resp := get(t, server.URL+"/healthz"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected healthz ok, got %d", resp.StatusCode)
	}
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp := get(t, url)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}
