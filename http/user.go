package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"wtfSocial/auth"
	"wtfSocial/errs"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	// Get the profile page of a specific user.
	r.HandleFunc("/users/{username}", s.handleProfile).Methods("GET")
}

// handleProfile handles the route "GET /users/{username}". It shows the
// user's posts, their follower and following counts, and whether the
// signed-in viewer follows them.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	account, err := s.us.ByUsername(username)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			s.renderNotFound(w, r, errs.ErrorMessage(err))
			return
		}
		errs.ReturnError(w, r, err)
		return
	}

	followers, err := s.us.CountFollowers(account.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	following, err := s.us.CountFolloweds(account.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	feed, err := s.ps.ByUserID(account.ID, pageNumber(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Title = account.Username
	data.Account = account
	data.Followers = followers
	data.Following = following
	data.Feed = feed
	data.Liked = s.likedSet(data.User)

	// Check if the signed-in viewer is following that user.
	if viewer := auth.GetUser(r.Context()); viewer != nil && viewer.ID != account.ID {
		if _, err := s.fs.ByIDs(viewer.ID, account.ID); err == nil {
			data.IsFollower = true
		} else if errs.ErrorCode(err) != errs.ENOTFOUND {
			errs.ReturnError(w, r, err)
			return
		}
	}

	s.views.Render(w, "profile", data)
}
