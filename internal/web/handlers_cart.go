package web

import (
	"net/http"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
)

// handleAddToCart is called asynchronously from product pages and answers a
// minimal JSON ack instead of redirecting. Only shoppers have carts.
func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(r)
	if !ok || sess.Role != model.RoleUser {
		writeJSON(w, http.StatusOK, map[string]bool{"success": false})
		return
	}

	if err := s.cart.Add(r.Context(), sess.Username, r.PathValue("id")); err != nil {
		s.logger.Warn("add to cart failed", "username", sess.Username, "error", err)
		writeJSON(w, http.StatusOK, map[string]bool{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r)

	lines, err := s.cart.View(r.Context(), sess.Username)
	if err != nil {
		s.logger.Error("cart view failed", "error", err)
		http.Error(w, "could not load cart", http.StatusInternalServerError)
		return
	}

	s.render(w, "order.html", map[string]any{
		"Cart": lines,
		// The token rides along in the place-order form so a double
		// submit replays the first checkout instead of repeating it.
		"CheckoutToken": s.checkout.NewToken(),
	})
}
