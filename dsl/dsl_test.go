package dsl

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func echo(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}
}

func do(t *testing.T, h http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBuild_RoutesByMethod(t *testing.T) {
	h := New().
		Resource("/tasks").
		Get(echo("list")).
		Post(echo("create")).
		Resource("/tasks/{id}").
		Get(echo("one")).
		Delete(echo("gone")).
		Build()

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/tasks", "list"},
		{http.MethodPost, "/tasks", "create"},
		{http.MethodGet, "/tasks/42", "one"},
		{http.MethodDelete, "/tasks/42", "gone"},
	}
	for _, tt := range tests {
		rec := do(t, h, tt.method, tt.path, nil)
		if rec.Code != http.StatusOK || rec.Body.String() != tt.want {
			t.Errorf("%s %s = %d %q, want 200 %q", tt.method, tt.path, rec.Code, rec.Body.String(), tt.want)
		}
	}
}

func TestBuild_JSONErrorBodies(t *testing.T) {
	h := New().Resource("/tasks").Get(echo("list")).Build()

	rec := do(t, h, http.MethodGet, "/nowhere", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	assertJSONError(t, rec, "not found")

	rec = do(t, h, http.MethodPut, "/tasks", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	assertJSONError(t, rec, "method not allowed")
}

func assertJSONError(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	if body.Error != want {
		t.Errorf("error = %q, want %q", body.Error, want)
	}
}

func TestSecure(t *testing.T) {
	h := New().
		Secure("s3cret").
		Resource("/ping").Get(echo("pong")).
		Build()

	rec := do(t, h, http.MethodGet, "/ping", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want 401", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/ping", map[string]string{"Authorization": "Bearer wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
	assertJSONError(t, rec, "unauthorized")

	rec = do(t, h, http.MethodGet, "/ping", map[string]string{"Authorization": "Bearer s3cret"})
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Errorf("good token: %d %q, want 200 pong", rec.Code, rec.Body.String())
	}
}

func TestUse_MiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := New().
		Use(mark("outer")).
		Use(mark("inner")).
		Resource("/x").Get(echo("ok")).
		Build()

	do(t, h, http.MethodGet, "/x", nil)
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v", order)
	}
}
