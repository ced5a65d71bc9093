package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/neha18-dp/freshbasket-aws-project/internal/checkout"
	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/service"
)

type Server struct {
	auth     *service.AuthService
	catalog  *service.CatalogService
	cart     *service.CartService
	sellers  *service.SellerService
	checkout *checkout.Checkout
	sessions *Sessions
	logger   *slog.Logger
	tmpl     *template.Template
}

func NewServer(
	auth *service.AuthService,
	catalog *service.CatalogService,
	cart *service.CartService,
	sellers *service.SellerService,
	co *checkout.Checkout,
	logger *slog.Logger,
) *Server {
	return &Server{
		auth:     auth,
		catalog:  catalog,
		cart:     cart,
		sellers:  sellers,
		checkout: co,
		sessions: NewSessions(),
		logger:   logger,
		tmpl:     parseTemplates(),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Public pages.
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /aboutus", s.handleAboutUs)
	mux.HandleFunc("GET /contactus", s.handleContactUs)
	mux.HandleFunc("GET /signup", s.handleSignupForm)
	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.handleLogout)

	// Authenticated pages.
	mux.HandleFunc("GET /home", s.requireSession(s.handleHome))
	mux.HandleFunc("GET /profile", s.requireSession(s.handleProfile))
	mux.HandleFunc("POST /profile", s.requireSession(s.handleProfile))

	// Category pages.
	mux.HandleFunc("GET /fruits", s.categoryPage("fruits"))
	mux.HandleFunc("GET /vegetables", s.categoryPage("vegetables"))
	mux.HandleFunc("GET /seasonal", s.categoryPage("seasonal"))
	mux.HandleFunc("GET /category/{name}", s.handleCategory)

	// Cart and orders.
	mux.HandleFunc("POST /addtocart/{id}", s.handleAddToCart)
	mux.HandleFunc("GET /cart", s.requireSession(s.handleCart))
	mux.HandleFunc("POST /placeorder", s.requireSession(s.handlePlaceOrder))
	mux.HandleFunc("GET /myorders", s.requireSession(s.handleMyOrders))

	// Seller dashboard.
	mux.HandleFunc("GET /seller", s.requireRole(model.RoleSeller, s.handleSellerDashboard))
	mux.HandleFunc("GET /seller/products", s.requireRole(model.RoleSeller, s.handleSellerProducts))
	mux.HandleFunc("GET /seller/add-product", s.requireRole(model.RoleSeller, s.handleSellerAddProductForm))
	mux.HandleFunc("POST /seller/add-product", s.requireRole(model.RoleSeller, s.handleSellerAddProduct))
	mux.HandleFunc("GET /seller/delete/{id}", s.requireRole(model.RoleSeller, s.handleSellerDeleteProduct))
	mux.HandleFunc("GET /seller/update/{id}", s.requireRole(model.RoleSeller, s.handleSellerUpdateProduct))
	mux.HandleFunc("POST /seller/update/{id}", s.requireRole(model.RoleSeller, s.handleSellerUpdateProduct))

	// Admin dashboard.
	mux.HandleFunc("GET /admin", s.requireRole(model.RoleAdmin, s.handleAdminDashboard))
	mux.HandleFunc("GET /admin/products", s.requireRole(model.RoleAdmin, s.handleAdminProducts))
	mux.HandleFunc("GET /admin/sellers", s.requireRole(model.RoleAdmin, s.handleAdminSellers))
	mux.HandleFunc("GET /admin/delete/{id}", s.requireRole(model.RoleAdmin, s.handleAdminDeleteProduct))
	mux.HandleFunc("POST /admin/seller/delete/{id}", s.requireRole(model.RoleAdmin, s.handleAdminDeleteSeller))

	return s.logRequests(mux)
}

// requireSession gates a page on any logged-in session.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessions.Get(r); !ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// requireRole gates a page on a specific role. A miss redirects to the
// public landing page rather than answering 401/403.
func (s *Server) requireRole(role model.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.Get(r)
		if !ok || sess.Role != role {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next(w, r)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
