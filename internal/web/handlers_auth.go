package web

import (
	"errors"
	"net/http"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/service"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", nil)
}

func (s *Server) handleAboutUs(w http.ResponseWriter, r *http.Request) {
	s.render(w, "aboutus.html", nil)
}

func (s *Server) handleContactUs(w http.ResponseWriter, r *http.Request) {
	s.render(w, "contactus.html", nil)
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "registration.html", nil)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	u, err := s.auth.Signup(r.Context(), service.SignupInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Email:    r.FormValue("email"),
	})
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("signup failed", "error", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	if err := s.sessions.Issue(w, u.Username, u.Role); err != nil {
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/home", http.StatusFound)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	u, err := s.auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, service.ErrBadCredentials) {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}
	if err != nil {
		s.logger.Error("login failed", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if err := s.sessions.Issue(w, u.Username, u.Role); err != nil {
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}

	switch u.Role {
	case model.RoleAdmin:
		http.Redirect(w, r, "/admin", http.StatusFound)
	case model.RoleSeller:
		http.Redirect(w, r, "/seller", http.StatusFound)
	default:
		http.Redirect(w, r, "/home", http.StatusFound)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context(), "")
	if err != nil {
		s.logger.Error("home failed", "error", err)
		http.Error(w, "could not load products", http.StatusInternalServerError)
		return
	}
	s.render(w, "home.html", map[string]any{"Products": products})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r)

	success := false
	if r.Method == http.MethodPost {
		_, err := s.auth.UpdateProfile(r.Context(), sess.Username, service.ProfileInput{
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Address: r.FormValue("address"),
		})
		if err != nil {
			s.logger.Error("profile update failed", "error", err)
			http.Error(w, "could not update profile", http.StatusInternalServerError)
			return
		}
		success = true
	}

	u, err := s.auth.GetUser(r.Context(), sess.Username)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.render(w, "profile.html", map[string]any{"User": u, "Success": success})
}
