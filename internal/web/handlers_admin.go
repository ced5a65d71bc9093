package web

import (
	"net/http"
)

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.auth.ListUsers(ctx)
	if err != nil {
		s.logger.Error("admin dashboard failed", "error", err)
		http.Error(w, "could not load dashboard", http.StatusInternalServerError)
		return
	}
	products, err := s.catalog.List(ctx, "")
	if err != nil {
		s.logger.Error("admin dashboard failed", "error", err)
		http.Error(w, "could not load dashboard", http.StatusInternalServerError)
		return
	}
	orders, err := s.checkout.ListAllOrders(ctx)
	if err != nil {
		s.logger.Error("admin dashboard failed", "error", err)
		http.Error(w, "could not load dashboard", http.StatusInternalServerError)
		return
	}

	s.render(w, "admin.html", map[string]any{
		"Users":    users,
		"Products": products,
		"Orders":   orders,
	})
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context(), "")
	if err != nil {
		s.logger.Error("admin products failed", "error", err)
		http.Error(w, "could not load products", http.StatusInternalServerError)
		return
	}
	s.render(w, "manageproducts.html", map[string]any{"Products": products})
}

func (s *Server) handleAdminSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := s.sellers.List(r.Context())
	if err != nil {
		s.logger.Error("admin sellers failed", "error", err)
		http.Error(w, "could not load sellers", http.StatusInternalServerError)
		return
	}
	s.render(w, "managesellers.html", map[string]any{"Sellers": sellers})
}

func (s *Server) handleAdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.logger.Error("admin delete product failed", "error", err)
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}

func (s *Server) handleAdminDeleteSeller(w http.ResponseWriter, r *http.Request) {
	if err := s.sellers.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.logger.Error("admin delete seller failed", "error", err)
		http.Error(w, "could not delete seller", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/sellers", http.StatusFound)
}
