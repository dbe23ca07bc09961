package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"wtfSocial/auth"
	"wtfSocial/errs"
)

func (s *Server) registerFeedRoutes(r *mux.Router) {
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/following", s.requireAuth(s.handleFollowing)).Methods("GET")
}

// handleIndex handles the route "GET /". It lists all posts, newest first,
// paginated. The page is public; signed-in viewers additionally get the post
// form and their like states.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	feed, err := s.ps.All(pageNumber(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Title = "All Posts"
	data.Feed = feed
	data.Liked = s.likedSet(data.User)
	s.views.Render(w, "index", data)
}

// handleFollowing handles the route "GET /following". It lists the posts of
// all accounts the signed-in user follows.
func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())

	feed, err := s.ps.ByFollowerID(user.ID, pageNumber(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Title = "Following"
	data.Feed = feed
	data.Liked = s.likedSet(user)
	s.views.Render(w, "index", data)
}
