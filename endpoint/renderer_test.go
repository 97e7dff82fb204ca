package endpoint

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStringRenderer_SetsContentTypeAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	r := StringRenderer{Body: "hello"}
	if err := r.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	resp := rec.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Fatalf("expected Content-Type %q, got %q", "text/plain; charset=utf-8", got)
	}
	if got := rec.Body.String(); got != "hello" {
		t.Fatalf("expected body %q, got %q", "hello", got)
	}
}

func TestStringRenderer_DoesNotOverrideExistingContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec.Header().Set("Content-Type", "text/custom")

	r := StringRenderer{Body: "ok", ContentType: "text/other"}
	if err := r.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if got := rec.Result().Header.Get("Content-Type"); got != "text/custom" {
		t.Fatalf("expected Content-Type %q, got %q", "text/custom", got)
	}
}

func TestStringRenderer_StatusOverrideAndEmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	r := StringRenderer{Status: http.StatusAccepted}
	if err := r.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestPlain_ForcesPlainText(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	renderer := Plain("plain body")
	renderer.ContentType = "text/html"
	if err := renderer.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	resp := rec.Result()
	if got := resp.Header.Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Fatalf("expected Content-Type %q, got %q", "text/plain; charset=utf-8", got)
	}
	if got := rec.Body.String(); got != "plain body" {
		t.Fatalf("expected body %q, got %q", "plain body", got)
	}
}

func TestNoContentRenderer(t *testing.T) {
	for _, tt := range []struct {
		status int
		want   int
	}{
		{0, http.StatusNoContent},
		{http.StatusResetContent, http.StatusResetContent},
	} {
		rec := httptest.NewRecorder()
		r := NoContentRenderer{Status: tt.status}
		if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		if rec.Code != tt.want {
			t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
		}
	}
}

func TestRendererFunc(t *testing.T) {
	rec := httptest.NewRecorder()
	var r Renderer = RendererFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusTeapot)
		return nil
	})
	if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rec.Code)
	}
}
