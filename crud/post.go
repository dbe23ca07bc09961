package crud

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// PostService manages Posts.
// It implements the domain.PostService interface.
type PostService struct {
	postValidator
}

// postValidator runs validations on incoming Post data.
// On success, it passes the data on to postGorm.
// Otherwise, it returns the error of the validation that has failed.
type postValidator struct {
	postGorm
}

// postGorm runs CRUD operations on the database using incoming Post data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type postGorm struct {
	db *gorm.DB
}

// NewPostService returns an instance of PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		postValidator{
			postGorm{
				db: db,
			},
		},
	}
}

// Ensure the PostService struct properly implements the domain.PostService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PostService = &PostService{}

// Create runs validations needed for creating new Post database records.
func (pv *postValidator) Create(post *domain.Post) error {
	err := runPostValFns(post,
		pv.userIdValid,
		pv.bodyMinLength,
		pv.bodyMaxLength)
	if err != nil {
		return err
	}
	return pv.postGorm.Create(post)
}

// Update runs validations needed for overwriting the body of an existing Post.
func (pv *postValidator) Update(post *domain.Post) error {
	err := runPostValFns(post,
		pv.idValid,
		pv.userIdValid,
		pv.bodyMinLength,
		pv.bodyMaxLength)
	if err != nil {
		return err
	}
	return pv.postGorm.Update(post)
}

// runPostValFns runs any number of functions of type postValFn on the passed in Post object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runPostValFns(post *domain.Post, fns ...postValFn) error {
	for _, fn := range fns {
		if err := fn(post); err != nil {
			return err
		}
	}
	return nil
}

// A postValFn is any function that takes in a pointer to a domain.Post object and returns an error.
type postValFn func(post *domain.Post) error

// bodyMinLength makes sure that the Post's body is not empty or all whitespace.
func (pv *postValidator) bodyMinLength(post *domain.Post) error {
	bodyStripped := strings.ReplaceAll(post.Body, " ", "")
	if bodyStripped == "" {
		return errs.Errorf(errs.EINVALID, "Post body must not be empty.")
	}
	return nil
}

// bodyMaxLength makes sure that the Post's body does not exceed the maximum length.
func (pv *postValidator) bodyMaxLength(post *domain.Post) error {
	if utf8.RuneCountInString(post.Body) > 280 {
		return errs.Errorf(errs.EINVALID, "Post body max length is 280 characters.")
	}
	return nil
}

// idValid makes sure that the passed in ID of a Post to be updated is greater than 0.
func (pv *postValidator) idValid(post *domain.Post) error {
	if post.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid post ID.")
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (pv *postValidator) userIdValid(post *domain.Post) error {
	if post.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid user ID.")
	}
	return nil
}

// ByID retrieves a Post database record by ID, along with its author and likes.
func (pg *postGorm) ByID(id int) (*domain.Post, error) {
	var post domain.Post
	err := pg.db.
		Preload("User").
		Preload("Likes").
		First(&post, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
		}
		return nil, err
	}
	return &post, nil
}

// Create stores the data from the Post object in a new database record.
func (pg *postGorm) Create(post *domain.Post) error {
	return pg.db.Create(post).Error
}

// Update saves changes to an existing post record in the database. Saving
// bumps UpdatedAt, which is what the feeds order on, so an edited post moves
// back to the top.
func (pg *postGorm) Update(post *domain.Post) error {
	return pg.db.Save(post).Error
}

// All returns the requested page of all posts.
func (pg *postGorm) All(page int) (*domain.Feed, error) {
	return pg.feedPage(func(db *gorm.DB) *gorm.DB {
		return db
	}, page)
}

// ByUserID returns the requested page of one user's posts.
func (pg *postGorm) ByUserID(userID, page int) (*domain.Feed, error) {
	return pg.feedPage(func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}, page)
}

// ByFollowerID returns the requested page of posts authored by users the
// given user follows.
func (pg *postGorm) ByFollowerID(followerID, page int) (*domain.Feed, error) {
	return pg.feedPage(func(db *gorm.DB) *gorm.DB {
		followed := pg.db.Model(&domain.Follow{}).
			Select("followed_id").
			Where("follower_id = ?", followerID)
		return db.Where("user_id IN (?)", followed)
	}, page)
}

// feedPage slices an ordered post query into one page of domain.PageSize
// posts. The ordering is "updated_at DESC, id DESC" so that pagination is
// deterministic even for same-instant rows. Out-of-range page numbers are
// clamped to the nearest valid page instead of erroring.
func (pg *postGorm) feedPage(scope func(*gorm.DB) *gorm.DB, page int) (*domain.Feed, error) {
	var total int64
	if err := scope(pg.db.Model(&domain.Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + domain.PageSize - 1) / domain.PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var posts []domain.Post
	err := scope(pg.db.Model(&domain.Post{})).
		Order("updated_at DESC, id DESC").
		Offset((page - 1) * domain.PageSize).
		Limit(domain.PageSize).
		Preload("User").
		Preload("Likes").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &domain.Feed{
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}
