package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aakash/content-server/entity"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// FindLatestByPostID returns the newest limit comments for a post, used to
// decorate listed posts.
func (r *CommentRepository) FindLatestByPostID(ctx context.Context, postID uuid.UUID, limit int) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).
		Order("created_at DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, "id = ?", id).Error
}

func (r *CommentRepository) DeleteByPostID(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, "post_id = ?", postID).Error
}
