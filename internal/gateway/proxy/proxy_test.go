package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestForward(t *testing.T) {
	t.Parallel()

	t.Run("forwards method, body and headers", func(t *testing.T) {
		var gotMethod, gotAuth, gotCT, gotBody, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotAuth = r.Header.Get("Authorization")
			gotCT = r.Header.Get("Content-Type")
			gotQuery = r.URL.RawQuery
			data, _ := io.ReadAll(r.Body)
			gotBody = string(data)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		app := fiber.New()
		app.Post("/things", ProxyTo(srv.URL+"/things"))

		req := httptest.NewRequest(http.MethodPost, "/things?limit=5", strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Authorization", "Bearer t")
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if gotMethod != http.MethodPost || gotAuth != "Bearer t" || gotCT != "application/json" {
			t.Fatalf("request not forwarded verbatim: %s %s %s", gotMethod, gotAuth, gotCT)
		}
		if gotBody != `{"name":"x"}` {
			t.Fatalf("body not forwarded, got %q", gotBody)
		}
		if gotQuery != "limit=5" {
			t.Fatalf("query string not forwarded, got %q", gotQuery)
		}

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected upstream status passed through, got %d", resp.StatusCode)
		}
		data, _ := io.ReadAll(resp.Body)
		var out map[string]bool
		if err := json.Unmarshal(data, &out); err != nil || !out["ok"] {
			t.Fatalf("expected upstream body passed through, got %s", data)
		}
	})

	t.Run("unreachable upstream maps to 502", func(t *testing.T) {
		app := fiber.New()
		app.Get("/things", ProxyTo("http://127.0.0.1:1/things"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", resp.StatusCode)
		}
	})

	t.Run("upstream error statuses pass through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer srv.Close()

		app := fiber.New()
		app.Get("/things/:id", func(c fiber.Ctx) error {
			return Forward(c, srv.URL+"/things/"+c.Params("id"))
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/42", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 passthrough, got %d", resp.StatusCode)
		}
	})
}
