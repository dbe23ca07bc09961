package http

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"wtfSocial/auth"
	"wtfSocial/domain"
)

// pageData is the context handed to every page template. Handlers fill in
// whichever fields their page uses; templates null-check the rest.
type pageData struct {
	User  *domain.User
	Title string

	// Form feedback.
	Message        string
	MessageSuccess string
	MessageError   string
	PostBody       string

	// Feed pages.
	Feed  *domain.Feed
	Liked map[int]bool

	// Profile page.
	Account    *domain.User
	Followers  int
	Following  int
	IsFollower bool

	CSRFField template.HTML
}

// newPageData builds the part of the template context that every page
// shares: the signed-in user (if any) and the CSRF form field.
func (s *Server) newPageData(r *http.Request) pageData {
	return pageData{
		User:      auth.GetUser(r.Context()),
		CSRFField: csrf.TemplateField(r),
	}
}

// pageNumber parses the optional ?page query parameter. Anything that is not
// a positive integer comes back as page 1; pages beyond the last one are
// clamped by the post service.
func pageNumber(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// likedSet builds the set of post IDs the viewer has liked, for rendering
// like/unlike buttons. Anonymous viewers get an empty set.
func (s *Server) likedSet(user *domain.User) map[int]bool {
	liked := map[int]bool{}
	if user == nil {
		return liked
	}
	likes, err := s.ls.ByUserID(user.ID)
	if err != nil {
		return liked
	}
	for _, like := range likes {
		liked[like.PostID] = true
	}
	return liked
}

// renderNotFound renders the 404 page with an optional detail message.
func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, message string) {
	data := s.newPageData(r)
	data.Title = "Not Found"
	data.Message = message
	s.views.RenderStatus(w, http.StatusNotFound, "notfound", data)
}
