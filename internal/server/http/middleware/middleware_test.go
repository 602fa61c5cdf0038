package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/domain/model"
	pkgAuth "github.com/memoriza/memoriza/internal/pkg/auth"
	testhelpers "github.com/memoriza/memoriza/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthRequired(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{}))
	router.GET("/", func(c *gin.Context) {})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken}))
	router.GET("/", func(c *gin.Context) {})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Err: context.DeadlineExceeded}))
	router.GET("/", func(c *gin.Context) {})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var stored *pkgAuth.Identity
	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Identity: &pkgAuth.Identity{UserID: 42, GroupID: model.GroupCustomer}}))
	router.GET("/", func(c *gin.Context) {
		stored = CurrentIdentity(c)
		c.Status(http.StatusOK)
	})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if stored == nil || stored.UserID != 42 {
		t.Fatalf("expected identity for user 42, got %+v", stored)
	}
}

func TestStaffRequired(t *testing.T) {
	tests := []struct {
		name     string
		identity *pkgAuth.Identity
		status   int
	}{
		{name: "no identity", status: http.StatusForbidden},
		{name: "customer", identity: &pkgAuth.Identity{UserID: 1, GroupID: model.GroupCustomer}, status: http.StatusForbidden},
		{name: "employee", identity: &pkgAuth.Identity{UserID: 2, GroupID: model.GroupEmployee}, status: http.StatusOK},
		{name: "admin", identity: &pkgAuth.Identity{UserID: 3, GroupID: model.GroupAdmin, Admin: true}, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.identity != nil {
					c.Set(IdentityContextKey, tt.identity)
				}
			})
			router.Use(StaffRequired())
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestPermissionRequired(t *testing.T) {
	identity := &pkgAuth.Identity{UserID: 7, GroupID: model.GroupEmployee}

	router := gin.New()
	router.Use(PermissionRequired(testhelpers.AccessControllerStub{}, model.ModuleOrders, model.ActionView))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(func(c *gin.Context) { c.Set(IdentityContextKey, identity) })
	router.Use(PermissionRequired(testhelpers.AccessControllerStub{AllowedFn: func(context.Context, *pkgAuth.Identity, model.BackOfficeModule, model.PermissionAction) (bool, error) {
		return false, context.DeadlineExceeded
	}}, model.ModuleOrders, model.ActionView))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on check failure, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(func(c *gin.Context) { c.Set(IdentityContextKey, identity) })
	router.Use(PermissionRequired(testhelpers.AccessControllerStub{AllowedFn: func(context.Context, *pkgAuth.Identity, model.BackOfficeModule, model.PermissionAction) (bool, error) {
		return false, nil
	}}, model.ModuleOrders, model.ActionDelete))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when denied, got %d", resp.Code)
	}

	var recorded *model.AccessLogEntry
	router = gin.New()
	router.Use(func(c *gin.Context) { c.Set(IdentityContextKey, identity) })
	router.Use(PermissionRequired(testhelpers.AccessControllerStub{RecordFn: func(ctx context.Context, entry *model.AccessLogEntry) error {
		recorded = entry
		return nil
	}}, model.ModuleOrders, model.ActionEdit))
	router.PUT("/admin/orders/10/status", func(c *gin.Context) { c.Status(http.StatusOK) })
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, "/admin/orders/10/status", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 when allowed, got %d", resp.Code)
	}
	if recorded == nil {
		t.Fatal("expected access log entry to be recorded")
	}
	if recorded.EmployeeID != 7 || recorded.Module != model.ModuleOrders || recorded.Action != "edit" {
		t.Fatalf("unexpected log entry: %+v", recorded)
	}
	if recorded.Detail != "PUT /admin/orders/10/status" {
		t.Fatalf("unexpected log detail %q", recorded.Detail)
	}

	// plain views pass through without an audit record
	recorded = nil
	router = gin.New()
	router.Use(func(c *gin.Context) { c.Set(IdentityContextKey, identity) })
	router.Use(PermissionRequired(testhelpers.AccessControllerStub{RecordFn: func(ctx context.Context, entry *model.AccessLogEntry) error {
		recorded = entry
		return nil
	}}, model.ModuleOrders, model.ActionView))
	router.GET("/admin/orders", func(c *gin.Context) { c.Status(http.StatusOK) })
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 when allowed, got %d", resp.Code)
	}
	if recorded != nil {
		t.Fatalf("view must not be recorded, got %+v", recorded)
	}
}

func TestSetAuthCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	SetAuthCookie(c, "token")
	if got := recorder.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
	result := recorder.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 || cookies[0].Value != "token" {
		t.Fatalf("expected cookie with token, got %+v", cookies)
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Del("Authorization")
	c.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie"})
	if token := extractToken(c); token != "cookie" {
		t.Fatalf("expected token from cookie, got %q", token)
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("payload"))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest())
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader(buf.Bytes())))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != "payload" {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader([]byte("plain"))))
	resp = httptest.NewRecorder()
	body = ""
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain body, got %q", body)
	}
}

func TestRequestLogger(t *testing.T) {
	var logged bool
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelInfo {
			logged = true
		}
		return a
	}})
	logger := slog.New(handler)

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if !logged {
		t.Fatalf("expected request to be logged")
	}
}
