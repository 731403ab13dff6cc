package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type memorySession struct {
	marker string
}

func (s *memorySession) SetMarker(ctx context.Context, marker string) error {
	s.marker = marker
	return nil
}

func (s *memorySession) Marker(ctx context.Context) (string, bool, error) {
	return s.marker, s.marker != "", nil
}

func (s *memorySession) Clear(ctx context.Context) error {
	s.marker = ""
	return nil
}

func TestSessionRoutes(t *testing.T) {
	store := &memorySession{}
	router := gin.New()
	SetupSessionRoutes(router, store)

	steps := []struct {
		name   string
		method string
		body   string
		status int
		want   string
	}{
		{"initially anonymous", http.MethodGet, "", http.StatusOK, `{"authenticated":false}`},
		{"missing marker", http.MethodPut, `{}`, http.StatusBadRequest, ""},
		{"login", http.MethodPut, `{"marker":"true"}`, http.StatusOK, `{"authenticated":true}`},
		{"now authenticated", http.MethodGet, "", http.StatusOK, `{"authenticated":true}`},
		{"logout", http.MethodDelete, "", http.StatusOK, `{"authenticated":false}`},
	}

	for _, step := range steps {
		req := httptest.NewRequest(step.method, "/api/session", strings.NewReader(step.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != step.status {
			t.Errorf("%s: expected status %d, got %d", step.name, step.status, w.Code)
		}
		if step.want != "" && w.Body.String() != step.want {
			t.Errorf("%s: expected body %s, got %s", step.name, step.want, w.Body.String())
		}
	}

	if store.marker != "" {
		t.Errorf("expected marker to be cleared, got %q", store.marker)
	}
}
