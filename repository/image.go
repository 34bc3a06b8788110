package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aakash/content-server/entity"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, image *entity.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *ImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Image, error) {
	var image entity.Image
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) FindByPostID(ctx context.Context, postID uuid.UUID) (*entity.Image, error) {
	var image entity.Image
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Image{}, "id = ?", id).Error
}
