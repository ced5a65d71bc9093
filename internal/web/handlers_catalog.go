package web

import (
	"fmt"
	"net/http"
)

// categoryPage serves the fixed category routes (/fruits, /vegetables,
// /seasonal).
func (s *Server) categoryPage(category string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := s.catalog.List(r.Context(), category)
		if err != nil {
			s.logger.Error("category page failed", "category", category, "error", err)
			http.Error(w, "could not load products", http.StatusInternalServerError)
			return
		}
		s.render(w, "category.html", map[string]any{
			"Category": category,
			"Products": products,
		})
	}
}

// handleCategory serves /category/{name} for any category string; an empty
// result is a 404 with a plain message.
func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	products, err := s.catalog.List(r.Context(), name)
	if err != nil {
		s.logger.Error("category page failed", "category", name, "error", err)
		http.Error(w, "could not load products", http.StatusInternalServerError)
		return
	}
	if len(products) == 0 {
		http.Error(w, fmt.Sprintf("No products found in category '%s'", name), http.StatusNotFound)
		return
	}
	s.render(w, "category.html", map[string]any{
		"Category": name,
		"Products": products,
	})
}
