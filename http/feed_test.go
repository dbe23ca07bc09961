package http

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexIsPublic(t *testing.T) {
	srv, _ := newTestServer(t)

	w := get(srv, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "All Posts")
	assert.Contains(t, w.Body.String(), "Log In")
}

func TestFollowingFeed(t *testing.T) {
	srv, services := newTestServer(t)
	aliceCookie := registerTestUser(t, srv, "alice")
	bobCookie := registerTestUser(t, srv, "bob")
	carolCookie := registerTestUser(t, srv, "carol")

	postForm(srv, "/post", url.Values{"postbody": {"from alice"}}, aliceCookie)
	postForm(srv, "/post", url.Values{"postbody": {"from carol"}}, carolCookie)

	alice, _ := services.User.ByUsername("alice")
	bob, _ := services.User.ByUsername("bob")
	w := postJSON(srv, fmt.Sprintf("/follow/%d/%d", bob.ID, alice.ID), nil, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Bob's following feed shows alice's post but not carol's.
	w = get(srv, "/following", bobCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "from alice")
	assert.NotContains(t, w.Body.String(), "from carol")
}

func TestFollowingFeedEmptyWhenFollowingNobody(t *testing.T) {
	srv, _ := newTestServer(t)
	aliceCookie := registerTestUser(t, srv, "alice")
	bobCookie := registerTestUser(t, srv, "bob")

	postForm(srv, "/post", url.Values{"postbody": {"from alice"}}, aliceCookie)

	w := get(srv, "/following", bobCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "from alice")
}
