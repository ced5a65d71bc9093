package web

import (
	"errors"
	"net/http"

	"github.com/neha18-dp/freshbasket-aws-project/internal/service"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
)

func (s *Server) handleSellerDashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, "seller.html", nil)
}

func (s *Server) handleSellerProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context(), "")
	if err != nil {
		s.logger.Error("seller products failed", "error", err)
		http.Error(w, "could not load products", http.StatusInternalServerError)
		return
	}
	s.render(w, "productdetails.html", map[string]any{"Products": products})
}

func (s *Server) handleSellerAddProductForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "addproducts.html", nil)
}

func productInputFromForm(r *http.Request) service.ProductInput {
	return service.ProductInput{
		Name:        r.FormValue("fruit_name"),
		Weight:      r.FormValue("fruit_weight"),
		Rate:        r.FormValue("fruit_rate"),
		Description: r.FormValue("fruit_desc"),
		Image:       r.FormValue("fruit_image"),
		Category:    r.FormValue("fruit_category"),
	}
}

func (s *Server) handleSellerAddProduct(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r)

	_, err := s.catalog.Add(r.Context(), sess.Username, productInputFromForm(r))
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("add product failed", "error", err)
		http.Error(w, "could not add product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/seller/products", http.StatusFound)
}

func (s *Server) handleSellerDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.logger.Error("delete product failed", "error", err)
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/seller/products", http.StatusFound)
}

func (s *Server) handleSellerUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if r.Method == http.MethodGet {
		p, err := s.catalog.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "could not load product", http.StatusInternalServerError)
			return
		}
		s.render(w, "edit_product.html", map[string]any{"Product": p})
		return
	}

	_, err := s.catalog.Update(r.Context(), id, service.ProductInput{
		Name:        r.FormValue("name"),
		Weight:      r.FormValue("weight"),
		Rate:        r.FormValue("rate"),
		Description: r.FormValue("description"),
		Image:       r.FormValue("image"),
		Category:    r.FormValue("category"),
	})
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("update product failed", "error", err)
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/seller/products", http.StatusFound)
}
