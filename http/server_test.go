package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wtfSocial/crud"
	"wtfSocial/domain"
)

// newTestServer builds a full Server on an in-memory sqlite database, with
// CSRF and rate limiting off, the way the dev setup runs.
func newTestServer(t *testing.T) (*Server, *crud.Services) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Post{},
		domain.Follow{},
		domain.Like{},
		domain.Comment{},
	))

	services, err := crud.NewServices(
		db,
		crud.WithUser("test-hmac-key", "test-pepper"),
		crud.WithPost(),
		crud.WithFollow(),
		crud.WithLike(),
	)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv, err := NewServer(false, "test-csrf-auth-key-32-bytes-long", services, log, nil)
	require.NoError(t, err)
	return srv, services
}

// get performs a GET request against the server, optionally authenticated.
func get(srv *Server, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

// postForm performs a form POST against the server, optionally authenticated.
func postForm(srv *Server, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

// postJSON performs a json POST against the server, optionally authenticated.
func postJSON(srv *Server, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest("POST", path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

// sessionCookie extracts the remember token cookie from a response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == rememberCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerTestUser registers a user through the register endpoint and
// returns their session cookie.
func registerTestUser(t *testing.T, srv *Server, username string) *http.Cookie {
	t.Helper()
	w := postForm(srv, "/register", url.Values{
		"username":     {username},
		"email":        {username + "@example.com"},
		"password":     {"password123"},
		"confirmation": {"password123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	return sessionCookie(t, w)
}

// decodeJSON unmarshals a json response body.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
