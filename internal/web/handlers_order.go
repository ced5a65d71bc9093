package web

import (
	"net/http"
)

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r)

	token := r.FormValue("checkout_token")
	if token == "" {
		token = s.checkout.NewToken()
	}

	result := s.checkout.PlaceOrder(r.Context(), token, sess.Username)
	if result.EmptyCart {
		http.Redirect(w, r, "/cart", http.StatusFound)
		return
	}
	if result.Err != nil {
		s.logger.Error("place order failed", "username", sess.Username, "error", result.Err)
		http.Error(w, "could not place order", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/myorders", http.StatusFound)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r)

	orders, err := s.checkout.ListOrders(r.Context(), sess.Username)
	if err != nil {
		s.logger.Error("my orders failed", "error", err)
		http.Error(w, "could not load orders", http.StatusInternalServerError)
		return
	}
	s.render(w, "myorders.html", map[string]any{"Orders": orders})
}
