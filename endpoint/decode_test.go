package endpoint

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestUnmarshal_Sources(t *testing.T) {
	type params struct {
		ID      int      `path:"id"`
		Name    string   `query:"name"`
		Verbose bool     `query:"v"`
		Tags    []string `query:"tag"`
		Agent   string   `header:"User-Agent"`
		Limit   uint16   `query:"limit"`
		Skipped string   `query:"-"`
		Untag   string
	}

	var got params
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := Unmarshal(r, &got); err != nil {
			t.Errorf("Unmarshal returned error: %v", err)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/items/42?name=bob&v=true&tag=a&tag=b&limit=7&skipped=x&untag=y", nil)
	req.Header.Set("User-Agent", "tester")
	mux.ServeHTTP(httptest.NewRecorder(), req)

	want := params{ID: 42, Name: "bob", Verbose: true, Tags: []string{"a", "b"}, Agent: "tester", Limit: 7}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestUnmarshal_DefaultNameAndPointerToStruct(t *testing.T) {
	type params struct {
		Count int `query:""`
	}
	var p *params
	req := httptest.NewRequest(http.MethodGet, "/?count=3", nil)
	if err := Unmarshal(req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if p == nil || p.Count != 3 {
		t.Fatalf("expected Count 3, got %+v", p)
	}
}

func TestUnmarshal_EmptyStruct(t *testing.T) {
	var p struct{}
	if err := Unmarshal(httptest.NewRequest(http.MethodGet, "/?x=1", nil), &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?n=abc&f=1.5", nil)

	tests := []struct {
		name       string
		dst        any
		req        *http.Request
		wantStatus int
	}{
		{"nil request", &struct{}{}, nil, http.StatusInternalServerError},
		{"non-pointer", struct{}{}, req, http.StatusInternalServerError},
		{"non-struct", new(string), req, http.StatusInternalServerError},
		{"bad int", &struct {
			N int `query:"n"`
		}{}, req, http.StatusBadRequest},
		{"overflow", &struct {
			N int8 `query:"n"`
		}{}, httptest.NewRequest(http.MethodGet, "/?n=300", nil), http.StatusBadRequest},
		{"unsupported type", &struct {
			F float64 `query:"f"`
		}{}, req, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal(tt.req, tt.dst)
			var ee *EndpointError
			if !errors.As(err, &ee) {
				t.Fatalf("expected EndpointError, got %v", err)
			}
			if ee.Status != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%v)", tt.wantStatus, ee.Status, err)
			}
		})
	}
}

func TestHandler_BadParamIs400(t *testing.T) {
	h := Handler(func(_ http.ResponseWriter, _ *http.Request, _ struct {
		N int `query:"n"`
	}) (Renderer, error) {
		t.Fatal("endpoint must not run when decoding fails")
		return nil, nil
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?n=x", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
