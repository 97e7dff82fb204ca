package endpoint

import "net/http"

// StringRenderer writes a string as the response body with an optional status
// code and content type.
//
// When ContentType is empty, StringRenderer defaults to
// "text/plain; charset=utf-8".
type StringRenderer struct {
	Status      int
	Body        string
	ContentType string
}

// setContentType leaves an already present Content-Type header alone.
func setContentType(w http.ResponseWriter, contentType string) {
	if w.Header().Get("Content-Type") == "" {
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
	}
}

// Render implements Renderer for StringRenderer.
func (sr *StringRenderer) Render(w http.ResponseWriter, _ *http.Request) error {
	setContentType(w, sr.ContentType)
	status := sr.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if sr.Body == "" {
		return nil
	}
	_, err := w.Write([]byte(sr.Body))
	return err
}

// PlainRenderer is a StringRenderer that always sends text/plain.
type PlainRenderer struct {
	StringRenderer
}

// Plain returns a 200 plain-text renderer for body.
func Plain(body string) *PlainRenderer {
	return &PlainRenderer{StringRenderer{Body: body}}
}

// Render implements Renderer for PlainRenderer.
func (pr *PlainRenderer) Render(w http.ResponseWriter, r *http.Request) error {
	pr.StringRenderer.ContentType = "text/plain; charset=utf-8"
	return pr.StringRenderer.Render(w, r)
}

// NoContentRenderer writes a response with no body.
//
// If Status is 0, it defaults to http.StatusNoContent.
type NoContentRenderer struct {
	Status int
}

func (ncr *NoContentRenderer) Render(w http.ResponseWriter, _ *http.Request) error {
	status := ncr.Status
	if status == 0 {
		status = http.StatusNoContent
	}
	w.WriteHeader(status)
	return nil
}
