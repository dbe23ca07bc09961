package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wtfSocial/auth"
	"wtfSocial/domain"
	"wtfSocial/errs"
)

func (s *Server) registerPostRoutes(r *mux.Router) {
	r.HandleFunc("/post", s.requireAuth(s.handleCreatePost)).Methods("POST")
	r.HandleFunc("/editpost", s.requireAuth(s.handleEditPost)).Methods("POST")
}

// handleCreatePost handles the route "POST /post". On success it re-renders
// the feed with a success flash. On a validation failure it re-renders the
// feed with the error flash and the entered text preserved, status 200.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}

	user := auth.GetUser(r.Context())
	post := domain.Post{
		UserID: user.ID,
		Body:   r.PostFormValue("postbody"),
	}

	if err := s.ps.Create(&post); err != nil {
		if errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}
		s.renderIndexWithFlash(w, r, "", "Error, please try again", post.Body)
		return
	}
	s.renderIndexWithFlash(w, r, "Posted", "", "")
}

// handleEditPost handles the route "POST /editpost". Only the author of a
// post may edit it. An edit attempt by anyone else is silently discarded
// with a redirect to the feed, no error surfaced.
func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}

	postID, err := strconv.Atoi(r.PostFormValue("postid"))
	if err != nil {
		s.renderNotFound(w, r, "The post does not exist.")
		return
	}

	post, err := s.ps.ByID(postID)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			s.renderNotFound(w, r, errs.ErrorMessage(err))
			return
		}
		errs.ReturnError(w, r, err)
		return
	}

	user := auth.GetUser(r.Context())
	if post.UserID != user.ID {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	post.Body = r.PostFormValue("postbody")
	if err := s.ps.Update(post); err != nil {
		if errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}
		s.renderIndexWithFlash(w, r, "", "Error, please try again", "")
		return
	}
	s.renderIndexWithFlash(w, r, "Posted", "", "")
}

// renderIndexWithFlash re-renders the first feed page with a flash message,
// as the post and editpost actions do after handling their form.
func (s *Server) renderIndexWithFlash(w http.ResponseWriter, r *http.Request, success, failure, postBody string) {
	feed, err := s.ps.All(pageNumber(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Title = "All Posts"
	data.Feed = feed
	data.Liked = s.likedSet(data.User)
	data.MessageSuccess = success
	data.MessageError = failure
	data.PostBody = postBody
	s.views.Render(w, "index", data)
}
