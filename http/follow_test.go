package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/errs"
)

func TestFollowAndUnfollow(t *testing.T) {
	srv, services := newTestServer(t)
	registerTestUser(t, srv, "alice")
	bobCookie := registerTestUser(t, srv, "bob")

	alice, err := services.User.ByUsername("alice")
	require.NoError(t, err)
	bob, err := services.User.ByUsername("bob")
	require.NoError(t, err)

	w := postJSON(srv, fmt.Sprintf("/follow/%d/%d", bob.ID, alice.ID), nil, bobCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "success", body["message"])
	assert.EqualValues(t, 1, body["followers"])

	_, err = services.Follow.ByIDs(bob.ID, alice.ID)
	assert.NoError(t, err)

	w = postJSON(srv, fmt.Sprintf("/unfollow/%d/%d", bob.ID, alice.ID), nil, bobCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	assert.Equal(t, "success", body["message"])
	assert.EqualValues(t, 0, body["followers"])

	_, err = services.Follow.ByIDs(bob.ID, alice.ID)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestFollowDuplicateRejected(t *testing.T) {
	srv, services := newTestServer(t)
	registerTestUser(t, srv, "alice")
	bobCookie := registerTestUser(t, srv, "bob")

	alice, _ := services.User.ByUsername("alice")
	bob, _ := services.User.ByUsername("bob")

	path := fmt.Sprintf("/follow/%d/%d", bob.ID, alice.ID)
	w := postJSON(srv, path, nil, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(srv, path, nil, bobCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeJSON(t, w)["error"], "already follow")
}

func TestFollowSelfRejected(t *testing.T) {
	srv, services := newTestServer(t)
	bobCookie := registerTestUser(t, srv, "bob")
	bob, _ := services.User.ByUsername("bob")

	w := postJSON(srv, fmt.Sprintf("/follow/%d/%d", bob.ID, bob.ID), nil, bobCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowUnknownFollowee(t *testing.T) {
	srv, services := newTestServer(t)
	bobCookie := registerTestUser(t, srv, "bob")
	bob, _ := services.User.ByUsername("bob")

	w := postJSON(srv, fmt.Sprintf("/follow/%d/9999", bob.ID), nil, bobCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowAsSomeoneElseForbidden(t *testing.T) {
	srv, services := newTestServer(t)
	registerTestUser(t, srv, "alice")
	bobCookie := registerTestUser(t, srv, "bob")

	alice, _ := services.User.ByUsername("alice")
	bob, _ := services.User.ByUsername("bob")

	// Bob cannot create follows on alice's behalf.
	w := postJSON(srv, fmt.Sprintf("/follow/%d/%d", alice.ID, bob.ID), nil, bobCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnfollowMissingEdge(t *testing.T) {
	srv, services := newTestServer(t)
	registerTestUser(t, srv, "alice")
	bobCookie := registerTestUser(t, srv, "bob")

	alice, _ := services.User.ByUsername("alice")
	bob, _ := services.User.ByUsername("bob")

	w := postJSON(srv, fmt.Sprintf("/unfollow/%d/%d", bob.ID, alice.ID), nil, bobCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
