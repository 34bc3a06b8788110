package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aakash/content-server/apperror"
	"github.com/aakash/content-server/entity"
)

// CreateComment persists the comment, then bumps the post's comment count in
// the background.
func (s *Service) CreateComment(ctx context.Context, postID uuid.UUID, content, creator string) (*entity.Comment, error) {
	var comment *entity.Comment
	err := s.Guard.Call("create-comment", func() error {
		created, err := s.createComment(ctx, postID, content, creator)
		if err != nil {
			return err
		}
		comment = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) createComment(ctx context.Context, postID uuid.UUID, content, creator string) (*entity.Comment, error) {
	if _, err := s.Repo.PostRepo.FindByID(ctx, postID); err != nil {
		return nil, storageErr("create comment", "Post", postID.String(), err)
	}

	comment := &entity.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		Content:   content,
		Creator:   creator,
		CreatedAt: s.Clock.Now(),
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.CommentRepo.Create(ctx, comment); err != nil {
		return nil, &apperror.StorageError{Op: "create comment", Err: err}
	}

	s.adjustCommentCount(postID, 1)
	return comment, nil
}

func (s *Service) GetComment(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	comment, err := s.Repo.CommentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("get comment", "Comment", id.String(), err)
	}
	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, postID uuid.UUID) ([]entity.Comment, error) {
	if _, err := s.Repo.PostRepo.FindByID(ctx, postID); err != nil {
		return nil, storageErr("list comments", "Post", postID.String(), err)
	}

	comments, err := s.Repo.CommentRepo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, &apperror.StorageError{Op: "list comments", Err: err}
	}
	return comments, nil
}

// DeleteComment removes a comment on behalf of its creator. Anyone else is
// refused and the comment stays.
func (s *Service) DeleteComment(ctx context.Context, id uuid.UUID, creator string) error {
	comment, err := s.Repo.CommentRepo.FindByID(ctx, id)
	if err != nil {
		return storageErr("delete comment", "Comment", id.String(), err)
	}

	if comment.Creator != creator {
		return &apperror.ConflictError{Message: "comment can only be deleted by its creator"}
	}

	if err := s.Repo.CommentRepo.Delete(ctx, id); err != nil {
		return &apperror.StorageError{Op: "delete comment", Err: err}
	}

	s.adjustCommentCount(comment.PostID, -1)
	return nil
}
