package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"wtfSocial/auth"
	"wtfSocial/domain"
	"wtfSocial/errs"
)

const rememberCookie = "remember_token"

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/login", s.handleLoginPage).Methods("GET")
	r.HandleFunc("/login", s.rateLimit(10, time.Minute, s.handleLogin)).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("GET")
	r.HandleFunc("/register", s.handleRegisterPage).Methods("GET")
	r.HandleFunc("/register", s.rateLimit(10, time.Minute, s.handleRegister)).Methods("POST")
}

// handleLoginPage handles the route "GET /login". It renders the login form.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)
	data.Title = "Log In"
	s.views.Render(w, "login", data)
}

// handleLogin handles the route "POST /login". On a credential match it
// establishes a session and redirects to the feed. On a mismatch it
// re-renders the login form with an error message and status 200.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}

	user, err := s.us.Authenticate(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}
		data := s.newPageData(r)
		data.Title = "Log In"
		data.Message = "Invalid username and/or password."
		s.views.Render(w, "login", data)
		return
	}

	if err := s.signIn(w, user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout handles the route "GET /logout". It destroys the session
// unconditionally and redirects to the feed. The remember token is rotated
// so the old cookie value can never be replayed.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     rememberCookie,
		Value:    "",
		Expires:  time.Now(),
		HttpOnly: true,
	})

	if user := auth.GetUser(r.Context()); user != nil {
		token, err := s.us.MakeRememberToken()
		if err == nil {
			user.Remember = token
			if err := s.us.Update(user); err != nil {
				errs.LogError(r, err)
			}
		}
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleRegisterPage handles the route "GET /register". It renders the
// registration form.
func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)
	data.Title = "Register"
	s.views.Render(w, "register", data)
}

// handleRegister handles the route "POST /register". It requires the
// password to match its confirmation and the username to be free. On success
// the new user is signed in right away and redirected to the feed.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}

	data := s.newPageData(r)
	data.Title = "Register"

	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirmation") {
		data.Message = "Passwords must match."
		s.views.Render(w, "register", data)
		return
	}

	user := domain.User{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: password,
	}
	if err := s.us.Create(&user); err != nil {
		if errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}
		data.Message = errs.ErrorMessage(err)
		s.views.Render(w, "register", data)
		return
	}

	if err := s.signIn(w, &user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// signIn is used to sign the given user in via cookies.
func (s *Server) signIn(w http.ResponseWriter, user *domain.User) error {
	if user.Remember == "" {
		token, err := s.us.MakeRememberToken()
		if err != nil {
			return err
		}
		user.Remember = token
		if err := s.us.Update(user); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     rememberCookie,
		Value:    user.Remember,
		HttpOnly: true,
	})
	return nil
}

// The setUser middleware tries to identify the requesting user by the
// remember token cookie and, on a match, puts the user into the request
// context. Requests without a valid cookie pass through anonymously.
func (s *Server) setUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(rememberCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByRemember(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth wraps handlers that need a signed-in user. Anonymous requests
// get redirected to the login page.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}
}
