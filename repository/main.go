package repository

import (
	"gorm.io/gorm"
)

type Repository struct {
	PostRepo    *PostRepository
	CommentRepo *CommentRepository
	ImageRepo   *ImageRepository
}

func InitRepository(db *gorm.DB) *Repository {
	return &Repository{
		PostRepo:    NewPostRepository(db),
		CommentRepo: NewCommentRepository(db),
		ImageRepo:   NewImageRepository(db),
	}
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		PostRepo:    NewPostRepository(tx),
		CommentRepo: NewCommentRepository(tx),
		ImageRepo:   NewImageRepository(tx),
	}
}
