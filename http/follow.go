package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wtfSocial/auth"
	"wtfSocial/domain"
	"wtfSocial/errs"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/follow/{follower_id:[0-9]+}/{followee_id:[0-9]+}",
		s.requireAuth(s.handleCreateFollow)).Methods("POST")
	r.HandleFunc("/unfollow/{follower_id:[0-9]+}/{followee_id:[0-9]+}",
		s.requireAuth(s.handleDeleteFollow)).Methods("POST")
}

// followIDs parses the follower and followee IDs from the url and verifies
// that the follower is the signed-in user. The identity always comes from
// the session; the path segment is just checked against it.
func (s *Server) followIDs(w http.ResponseWriter, r *http.Request) (followerID, followeeID int, ok bool) {
	vars := mux.Vars(r)
	followerID, _ = strconv.Atoi(vars["follower_id"])
	followeeID, _ = strconv.Atoi(vars["followee_id"])

	user := auth.GetUser(r.Context())
	if user.ID != followerID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You can only manage your own follows."))
		return 0, 0, false
	}
	return followerID, followeeID, true
}

// handleCreateFollow handles the route "POST /follow/{follower_id}/{followee_id}".
// It creates the follow edge and returns the followee's updated follower
// count as json.
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	followerID, followeeID, ok := s.followIDs(w, r)
	if !ok {
		return
	}

	if _, err := s.us.ByID(followeeID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	follow := domain.Follow{
		FollowerID: followerID,
		FollowedID: followeeID,
	}
	if err := s.fs.Create(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	s.returnFollowerCount(w, r, followeeID)
}

// handleDeleteFollow handles the route "POST /unfollow/{follower_id}/{followee_id}".
// It deletes the follow edge and returns the followee's updated follower
// count as json.
func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	followerID, followeeID, ok := s.followIDs(w, r)
	if !ok {
		return
	}

	follow, err := s.fs.ByIDs(followerID, followeeID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := s.fs.Delete(follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	s.returnFollowerCount(w, r, followeeID)
}

// returnFollowerCount writes the json acknowledgment both follow actions
// respond with.
func (s *Server) returnFollowerCount(w http.ResponseWriter, r *http.Request, followeeID int) {
	followers, err := s.us.CountFollowers(followeeID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"message":   "success",
		"followers": followers,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		errs.LogError(r, err)
	}
}
