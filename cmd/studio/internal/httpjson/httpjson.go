package httpjson

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

const (
	maxBodySize = 1 << 20
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		slog.Error("error marshaling response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

/*
ReadFields returns the named fields of a request body as strings. JSON
bodies are decoded, anything else is treated as a form. Numbers are
kept in their literal form so a PIN sent as 0123 or 1234 reads back
as written.
*/
func ReadFields(r *http.Request, names ...string) (map[string]string, error) {
	result := map[string]string{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		body := map[string]any{}

		decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
		decoder.UseNumber()

		if err := decoder.Decode(&body); err != nil && err != io.EOF {
			return result, fmt.Errorf("error decoding request body: %w", err)
		}

		for _, name := range names {
			if value, ok := body[name]; ok && value != nil {
				result[name] = strings.TrimSpace(fmt.Sprint(value))
			}
		}

		return result, nil
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)

	if err := r.ParseForm(); err != nil {
		return result, fmt.Errorf("error parsing form: %w", err)
	}

	for _, name := range names {
		result[name] = strings.TrimSpace(r.PostForm.Get(name))
	}

	return result, nil
}

/*
BaseURL is the scheme and host the request was made to, honoring
X-Forwarded-Proto from a reverse proxy.
*/
func BaseURL(r *http.Request) string {
	scheme := "http"

	if r.TLS != nil {
		scheme = "https"
	}

	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	return scheme + "://" + r.Host
}
