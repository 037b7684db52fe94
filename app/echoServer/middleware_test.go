// app/echoServer/middleware_test.go
package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func callRequireUser(t *testing.T, header string) (*httptest.ResponseRecorder, int64) {
	t.Helper()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(HeaderUserID, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen int64
	h := RequireUser()(func(c echo.Context) error {
		seen, _ = c.Get("user_id").(int64)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, seen
}

func TestRequireUser(t *testing.T) {
	rec, seen := callRequireUser(t, "42")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if seen != 42 {
		t.Fatalf("want user id 42 in context, got %d", seen)
	}
}

func TestRequireUser_MissingHeader(t *testing.T) {
	rec, seen := callRequireUser(t, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if seen != 0 {
		t.Fatal("next handler must not run")
	}
}

func TestRequireUser_BadHeader(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "0", "1.5"} {
		rec, _ := callRequireUser(t, raw)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("header %q: want 400, got %d", raw, rec.Code)
		}
	}
}
