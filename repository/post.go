package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aakash/content-server/entity"
)

// activityOrder is the compound sort behind both the ranked listing and the
// cursor queries. createdAt breaks comment-count ties at the storage layer.
const activityOrder = "comments_count DESC, created_at DESC"

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) UpdateCaption(ctx context.Context, id uuid.UUID, caption string) error {
	return r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).
		Update("content", caption).Error
}

// LinkImage attaches the stored image to the post in a single two-column
// write, issued only after the image metadata record exists.
func (r *PostRepository) LinkImage(ctx context.Context, id, imageID uuid.UUID, accessURI string) error {
	return r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"image_id":         imageID,
			"image_access_uri": accessURI,
		}).Error
}

// AddToCommentsCount applies the delta with a single atomic in-store addition.
// The counter is never read back and re-written from application memory, so
// concurrent comment traffic on the same post cannot lose updates.
func (r *PostRepository) AddToCommentsCount(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", delta)).Error
}

func (r *PostRepository) FindAll(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// FindTop returns the offset-paginated ranked listing.
func (r *PostRepository) FindTop(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).Order(activityOrder).
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// FindNextByCursor returns posts strictly below the comments-count cursor.
// The cursor is the scalar count only; rows tying with the boundary value are
// not re-validated, which can skip or duplicate rows across page boundaries.
func (r *PostRepository) FindNextByCursor(ctx context.Context, commentsCount int64, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).Where("comments_count < ?", commentsCount).
		Order(activityOrder).Limit(limit).Find(&posts).Error
	return posts, err
}

// FindPreviousByCursor returns posts strictly above the comments-count cursor.
func (r *PostRepository) FindPreviousByCursor(ctx context.Context, commentsCount int64, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).Where("comments_count > ?", commentsCount).
		Order(activityOrder).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Post{}, "id = ?", id).Error
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
