package crud

import (
	"gorm.io/gorm"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
// Otherwise, it returns the error of the validation that has failed.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Create runs validations needed for creating new Like database records.
func (lv *likeValidator) Create(like *domain.Like) error {
	err := runLikeValFns(like,
		lv.userIdValid,
		lv.likedPostExists)
	if err != nil {
		return err
	}
	return lv.likeGorm.Create(like)
}

// Delete runs validations needed for deleting existing Like database records.
func (lv *likeValidator) Delete(like *domain.Like) error {
	err := runLikeValFns(like,
		lv.userIdValid,
		lv.likedPostExists)
	if err != nil {
		return err
	}
	return lv.likeGorm.Delete(like)
}

// runLikeValFns runs any number of functions of type likeValFn on the passed in Like object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runLikeValFns(like *domain.Like, fns ...likeValFn) error {
	for _, fn := range fns {
		if err := fn(like); err != nil {
			return err
		}
	}
	return nil
}

// A likeValFn is any function that takes in a pointer to a domain.Like object and returns an error.
type likeValFn func(like *domain.Like) error

// likedPostExists makes sure that the post to be liked actually exists.
func (lv *likeValidator) likedPostExists(like *domain.Like) error {
	err := lv.db.First(&domain.Post{}, "id = ?", like.PostID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The liked post does not exist.")
		}
		return err
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (lv *likeValidator) userIdValid(like *domain.Like) error {
	if like.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid user ID.")
	}
	return nil
}

// ByUserID retrieves all likes of a user.
func (lg *likeGorm) ByUserID(userID int) ([]domain.Like, error) {
	var likes []domain.Like
	err := lg.db.Where("user_id = ?", userID).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// Create stores the like in a new database record. Likes are set membership,
// so creating one that already exists is a no-op rather than an error.
func (lg *likeGorm) Create(like *domain.Like) error {
	var existing domain.Like
	err := lg.db.First(&existing, "user_id = ? AND post_id = ?", like.UserID, like.PostID).Error
	if err == nil {
		*like = existing
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return lg.db.Create(like).Error
}

// Delete removes the membership row matching the like, if there is one.
// Deleting a like that does not exist is a no-op.
func (lg *likeGorm) Delete(like *domain.Like) error {
	return lg.db.Where("user_id = ? AND post_id = ?", like.UserID, like.PostID).
		Delete(&domain.Like{}).Error
}
