package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"wtfSocial/auth"
	"wtfSocial/domain"
	"wtfSocial/errs"
)

// registerLikeRoutes is a helper for registering all Like routes.
// The routes are registered without a method matcher on purpose: a non-POST
// request must come back as a 400 with a json error, not as a plain 405.
func (s *Server) registerLikeRoutes(r *mux.Router) {
	r.HandleFunc("/like", s.requireAuth(s.handleCreateLike))
	r.HandleFunc("/unlike", s.requireAuth(s.handleDeleteLike))
}

// likeFromRequest guards the method and decodes the {"postid": N} body the
// like actions share.
func (s *Server) likeFromRequest(w http.ResponseWriter, r *http.Request) (*domain.Like, bool) {
	if r.Method != http.MethodPost {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "POST request required."))
		return nil, false
	}

	var body struct {
		PostID int `json:"postid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return nil, false
	}

	user := auth.GetUser(r.Context())
	return &domain.Like{
		UserID: user.ID,
		PostID: body.PostID,
	}, true
}

// handleCreateLike handles the route "POST /like". It adds the signed-in
// user to the post's like set. Liking an already liked post has no
// additional effect.
func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	like, ok := s.likeFromRequest(w, r)
	if !ok {
		return
	}

	if err := s.ls.Create(like); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.returnLikeSuccess(w, r)
}

// handleDeleteLike handles the route "POST /unlike". It removes the
// signed-in user from the post's like set. Unliking a post that was not
// liked is a no-op.
func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	like, ok := s.likeFromRequest(w, r)
	if !ok {
		return
	}

	if err := s.ls.Delete(like); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.returnLikeSuccess(w, r)
}

func (s *Server) returnLikeSuccess(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "success"}); err != nil {
		errs.LogError(r, err)
	}
}
