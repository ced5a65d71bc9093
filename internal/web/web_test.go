package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neha18-dp/freshbasket-aws-project/internal/checkout"
	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/notify"
	"github.com/neha18-dp/freshbasket-aws-project/internal/service"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()

	m := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := notify.NewNotifier(&notify.LogPublisher{Logger: logger}, "FreshBasket", logger)

	s := NewServer(
		service.NewAuthService(m, notifier),
		service.NewCatalogService(m, notifier),
		service.NewCartService(m),
		service.NewSellerService(m),
		checkout.New(m, notifier, logger),
		logger,
	)
	return s, m
}

func sessionCookieFor(t *testing.T, s *Server, username string, role model.Role) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := s.sessions.Issue(rec, username, role); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestSellerDashboardGate(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Routes()

	cases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "anonymous", cookie: nil},
		{name: "shopper", cookie: sessionCookieFor(t, s, "dasha", model.RoleUser)},
		{name: "admin", cookie: sessionCookieFor(t, s, "root", model.RoleAdmin)},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/seller", nil)
		if tc.cookie != nil {
			req.AddCookie(tc.cookie)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Errorf("%s: expected redirect, got %d", tc.name, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Errorf("%s: expected redirect to '/', got '%s'", tc.name, loc)
		}
	}

	// The real seller gets the dashboard.
	req := httptest.NewRequest(http.MethodGet, "/seller", nil)
	req.AddCookie(sessionCookieFor(t, s, "seller1", model.RoleSeller))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for seller, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Seller Dashboard") {
		t.Error("Expected the seller dashboard to render")
	}
}

func TestAdminDashboardGate(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Routes()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(sessionCookieFor(t, s, "seller1", model.RoleSeller))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Errorf("Expected redirect to '/', got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func addToCart(t *testing.T, handler http.Handler, cookie *http.Cookie, productID string) bool {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/addtocart/"+productID, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Expected a JSON ack, got: %v", err)
	}
	return resp.Success
}

func TestAddToCartAck(t *testing.T) {
	s, m := newTestServer(t)
	handler := s.Routes()
	ctx := context.Background()

	if err := m.PutProduct(ctx, model.Product{ID: "p1", Name: "Apple", Rate: 120, Category: "fruits"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if addToCart(t, handler, nil, "p1") {
		t.Error("Expected success=false without a session")
	}
	if addToCart(t, handler, sessionCookieFor(t, s, "seller1", model.RoleSeller), "p1") {
		t.Error("Expected success=false for a seller session")
	}

	shopper := sessionCookieFor(t, s, "dasha", model.RoleUser)
	if !addToCart(t, handler, shopper, "p1") {
		t.Error("Expected success=true for a shopper")
	}
	if !addToCart(t, handler, shopper, "p1") {
		t.Error("Expected success=true for a repeated add")
	}

	lines, _ := m.ListCartLines(ctx, "dasha")
	if len(lines) != 1 || lines[0].Qty != 2 {
		t.Errorf("Expected a single line with qty 2, got %+v", lines)
	}

	if addToCart(t, handler, shopper, "no-such-product") {
		t.Error("Expected success=false for an unknown product")
	}
}

func TestPlaceOrderEmptyCartRedirectsToCart(t *testing.T) {
	s, m := newTestServer(t)
	handler := s.Routes()

	req := httptest.NewRequest(http.MethodPost, "/placeorder", nil)
	req.AddCookie(sessionCookieFor(t, s, "dasha", model.RoleUser))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/cart" {
		t.Errorf("Expected redirect to '/cart', got '%s'", loc)
	}

	orders, _ := m.ListOrders(context.Background())
	if len(orders) != 0 {
		t.Errorf("Expected order list unchanged, got %d orders", len(orders))
	}
}

func TestCategoryPages(t *testing.T) {
	s, m := newTestServer(t)
	handler := s.Routes()
	ctx := context.Background()

	products := []model.Product{
		{ID: "p1", Name: "Apple", Rate: 120, Category: "fruits"},
		{ID: "p2", Name: "Tomato", Rate: 40, Category: "vegetables"},
	}
	for _, p := range products {
		if err := m.PutProduct(ctx, p); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/fruits", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Apple") || strings.Contains(body, "Tomato") {
		t.Error("Expected only fruits on the fruits page")
	}

	// Case-insensitive generic route.
	req = httptest.NewRequest(http.MethodGet, "/category/FRUITS", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for /category/FRUITS, got %d", rec.Code)
	}

	// Empty category is a 404 with a plain message.
	req = httptest.NewRequest(http.MethodGet, "/category/dairy", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an empty category, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No products found in category 'dairy'") {
		t.Errorf("Unexpected 404 body: %s", rec.Body.String())
	}
}

func TestHomeRequiresSession(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Routes()

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Errorf("Expected redirect to '/', got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(sessionCookieFor(t, s, "dasha", model.RoleUser))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 with a session, got %d", rec.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Routes()

	cookie := sessionCookieFor(t, s, "dasha", model.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Errorf("Expected redirect to '/', got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	// The old cookie no longer authenticates.
	req = httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Errorf("Expected redirect after logout, got %d", rec.Code)
	}
}
