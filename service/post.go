package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aakash/content-server/apperror"
	"github.com/aakash/content-server/entity"
	"github.com/aakash/content-server/infra/produce"
	"github.com/aakash/content-server/processor"
	"github.com/aakash/content-server/worker"
)

const (
	postCacheTTL          = 10 * time.Minute
	latestCommentsListed  = 2
	imageContentPathTmpl  = "/api/v1/images/%s/content"
	originalKeyTemplate   = "original/original-%s.%s"
	compressedKeyTemplate = "compressed/compressed-%s.%s"
)

// ImageUpload is the raw upload attached to a new post.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// PostWithComments decorates a post with its newest comments for listings.
type PostWithComments struct {
	entity.Post
	LatestComments []entity.Comment `json:"latest_comments"`
}

// CursorPage is one page of the activity-ordered feed. Next carries the
// comment count of the last row, Previous the count of the first row; both
// are omitted when the page is empty.
type CursorPage struct {
	Posts    []PostWithComments `json:"posts"`
	Next     *int64             `json:"next,omitempty"`
	Previous *int64             `json:"previous,omitempty"`
}

func postCacheKey(id uuid.UUID) string {
	return "post:" + id.String()
}

// CreatePost validates and persists the post skeleton, then hands image
// ingestion to the background pool. The returned post is visible immediately;
// its image link appears once the pipeline finishes.
func (s *Service) CreatePost(ctx context.Context, caption, creator string, upload *ImageUpload) (*entity.Post, error) {
	var post *entity.Post
	err := s.Guard.Call("create-post", func() error {
		created, err := s.createPost(ctx, caption, creator, upload)
		if err != nil {
			return err
		}
		post = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) createPost(ctx context.Context, caption, creator string, upload *ImageUpload) (*entity.Post, error) {
	post := &entity.Post{
		ID:            uuid.New(),
		Content:       caption,
		Creator:       creator,
		CommentsCount: 0,
		CreatedAt:     s.Clock.Now(),
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	var ext string
	if upload != nil {
		ext = entity.FileExtension(upload.Filename)
		if fields := validateUpload(ext, upload); fields != nil {
			return nil, &apperror.ValidationError{Fields: fields}
		}
	}

	if err := s.Repo.PostRepo.Create(ctx, post); err != nil {
		return nil, &apperror.StorageError{Op: "create post", Err: err}
	}

	if upload != nil {
		postID := post.ID
		data := upload.Data
		// the two tasks are independent and may finish in either order; only
		// the resized variant gates the post link
		if err := s.Pool.Submit(func(taskCtx context.Context) {
			s.uploadOriginal(taskCtx, postID, ext, data)
		}); err != nil {
			s.Logger.WarningWithContextf(ctx, err, "original upload for post %s not scheduled", postID)
		}
		if err := s.Pool.Submit(func(taskCtx context.Context) {
			s.transformAndLink(taskCtx, postID, ext, data)
		}); err != nil {
			// the post stays visible without an image; nothing to roll back
			s.Logger.WarningWithContextf(ctx, err, "image ingestion for post %s not scheduled", postID)
		}
	}

	if err := s.Publisher.PublishPostCreated(ctx, produce.PostCreatedMessage{
		PostID:   post.ID.String(),
		Creator:  post.Creator,
		HasImage: upload != nil,
	}); err != nil {
		s.Logger.WarningWithContextf(ctx, err, "post created event for %s not published", post.ID)
	}

	return post, nil
}

func validateUpload(ext string, upload *ImageUpload) map[string]string {
	if len(upload.Data) == 0 {
		return map[string]string{"image": "image file cannot be empty"}
	}
	if !entity.SupportedImageExtensions[ext] {
		return map[string]string{"image": "unsupported image type " + ext}
	}
	return nil
}

func contentTypeFor(ext string) string {
	if ext == "jpg" {
		return "image/jpeg"
	}
	return "image/" + ext
}

// uploadOriginal archives the untouched upload. Its completion is never
// linked into the post record; it exists for retrieval only.
func (s *Service) uploadOriginal(ctx context.Context, postID uuid.UUID, ext string, data []byte) {
	originalKey := fmt.Sprintf(originalKeyTemplate, postID, ext)
	if err := s.Store.Upload(ctx, originalKey, data, contentTypeFor(ext)); err != nil {
		s.Logger.ErrorWithContextf(ctx, err, "original upload failed for post %s", postID)
	}
}

// transformAndLink runs detached from the originating request: it produces
// the resized variant, records the image metadata and finally links the post.
// Any failure is logged and leaves the post without an image; no partial
// image record is ever linked.
func (s *Service) transformAndLink(ctx context.Context, postID uuid.UUID, ext string, data []byte) {
	originalKey := fmt.Sprintf(originalKeyTemplate, postID, ext)
	profile, ok := s.Profiles[entity.ActivityPost]
	if !ok {
		err := &apperror.ProcessingError{Message: "no resize profile for activity " + string(entity.ActivityPost)}
		s.Logger.ErrorWithContextf(ctx, err, "resize skipped for post %s", postID)
		return
	}

	resized, err := processor.Resize(data, profile.Width, profile.Height, profile.Format, profile.Quality)
	if err != nil {
		s.Logger.ErrorWithContextf(ctx, err, "resize failed for post %s", postID)
		return
	}

	compressedKey := fmt.Sprintf(compressedKeyTemplate, postID, profile.Format)
	if err := s.Store.Upload(ctx, compressedKey, resized, contentTypeFor(profile.Format)); err != nil {
		s.Logger.ErrorWithContextf(ctx, err, "compressed upload failed for post %s", postID)
		return
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"width":        profile.Width,
		"height":       profile.Height,
		"format":       profile.Format,
		"quality":      profile.Quality,
		"original_key": originalKey,
	})

	image := &entity.Image{
		ID:            uuid.New(),
		PostID:        postID,
		BucketName:    s.Bucket,
		Location:      compressedKey,
		SizeInKB:      int64(len(resized)) / 1024,
		Type:          contentTypeFor(profile.Format),
		TransformMeta: meta,
		CreatedAt:     s.Clock.Now(),
	}
	image.AccessURI = fmt.Sprintf(imageContentPathTmpl, image.ID)

	if err := s.Repo.ImageRepo.Create(ctx, image); err != nil {
		s.Logger.ErrorWithContextf(ctx, err, "image record for post %s not persisted", postID)
		return
	}

	if err := s.Repo.PostRepo.LinkImage(ctx, postID, image.ID, image.AccessURI); err != nil {
		s.Logger.ErrorWithContextf(ctx, err, "image link for post %s not persisted", postID)
		return
	}

	if err := s.Cache.Delete(ctx, postCacheKey(postID)); err != nil {
		s.Logger.WarningWithContextf(ctx, err, "cache invalidation for post %s failed", postID)
	}

	if err := s.Publisher.PublishImageLinked(ctx, produce.ImageLinkedMessage{
		PostID:    postID.String(),
		ImageID:   image.ID.String(),
		AccessURI: image.AccessURI,
	}); err != nil {
		s.Logger.WarningWithContextf(ctx, err, "image linked event for post %s not published", postID)
	}

	s.Logger.InfoWithContextf(ctx, "image %s linked to post %s", image.ID, postID)
}

// GetPost reads through the cache.
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var cached entity.Post
	if err := s.Cache.Get(ctx, postCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	post, err := s.Repo.PostRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("get post", "Post", id.String(), err)
	}

	if err := s.Cache.Set(ctx, postCacheKey(id), post, postCacheTTL); err != nil {
		s.Logger.WarningWithContextf(ctx, err, "post %s not cached", id)
	}
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id uuid.UUID, caption string) (*entity.Post, error) {
	post, err := s.Repo.PostRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("update post", "Post", id.String(), err)
	}

	post.Content = caption
	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.PostRepo.UpdateCaption(ctx, id, caption); err != nil {
		return nil, &apperror.StorageError{Op: "update post", Err: err}
	}

	if err := s.Cache.Delete(ctx, postCacheKey(id)); err != nil {
		s.Logger.WarningWithContextf(ctx, err, "cache invalidation for post %s failed", id)
	}
	return post, nil
}

// DeletePost removes the post with its comments, image record and stored
// objects. Object removal is best effort.
func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) error {
	post, err := s.Repo.PostRepo.FindByID(ctx, id)
	if err != nil {
		return storageErr("delete post", "Post", id.String(), err)
	}

	if post.ImageID != nil {
		image, err := s.Repo.ImageRepo.FindByID(ctx, *post.ImageID)
		if err == nil {
			if err := s.Store.Remove(ctx, image.Location); err != nil {
				s.Logger.WarningWithContextf(ctx, err, "stored object %s not removed", image.Location)
			}
			if err := s.Repo.ImageRepo.Delete(ctx, image.ID); err != nil {
				s.Logger.WarningWithContextf(ctx, err, "image record %s not removed", image.ID)
			}
		}
	}

	if err := s.Repo.CommentRepo.DeleteByPostID(ctx, id); err != nil {
		return &apperror.StorageError{Op: "delete post comments", Err: err}
	}

	if err := s.Repo.PostRepo.Delete(ctx, id); err != nil {
		return &apperror.StorageError{Op: "delete post", Err: err}
	}

	if err := s.Cache.Delete(ctx, postCacheKey(id)); err != nil {
		s.Logger.WarningWithContextf(ctx, err, "cache invalidation for post %s failed", id)
	}
	return nil
}

func (s *Service) GetAllPosts(ctx context.Context, page, size int) ([]entity.Post, error) {
	posts, err := s.Repo.PostRepo.FindAll(ctx, page*size, size)
	if err != nil {
		return nil, &apperror.StorageError{Op: "list posts", Err: err}
	}
	return posts, nil
}

// GetTopPosts returns the ranked listing, each post carrying its newest
// comments.
func (s *Service) GetTopPosts(ctx context.Context, page, size int) ([]PostWithComments, error) {
	posts, err := s.Repo.PostRepo.FindTop(ctx, page*size, size)
	if err != nil {
		return nil, &apperror.StorageError{Op: "list top posts", Err: err}
	}
	return s.decorate(ctx, posts)
}

func (s *Service) GetNextPosts(ctx context.Context, cursor int64, size int) (*CursorPage, error) {
	posts, err := s.Repo.PostRepo.FindNextByCursor(ctx, cursor, size)
	if err != nil {
		return nil, &apperror.StorageError{Op: "cursor posts", Err: err}
	}
	return s.cursorPage(ctx, posts)
}

func (s *Service) GetPreviousPosts(ctx context.Context, cursor int64, size int) (*CursorPage, error) {
	posts, err := s.Repo.PostRepo.FindPreviousByCursor(ctx, cursor, size)
	if err != nil {
		return nil, &apperror.StorageError{Op: "cursor posts", Err: err}
	}
	return s.cursorPage(ctx, posts)
}

func (s *Service) cursorPage(ctx context.Context, posts []entity.Post) (*CursorPage, error) {
	decorated, err := s.decorate(ctx, posts)
	if err != nil {
		return nil, err
	}
	page := &CursorPage{Posts: decorated}
	if len(posts) > 0 {
		first := posts[0].CommentsCount
		last := posts[len(posts)-1].CommentsCount
		page.Previous = &first
		page.Next = &last
	}
	return page, nil
}

func (s *Service) decorate(ctx context.Context, posts []entity.Post) ([]PostWithComments, error) {
	decorated := make([]PostWithComments, 0, len(posts))
	for _, post := range posts {
		comments, err := s.Repo.CommentRepo.FindLatestByPostID(ctx, post.ID, latestCommentsListed)
		if err != nil {
			return nil, &apperror.StorageError{Op: "list post comments", Err: err}
		}
		decorated = append(decorated, PostWithComments{Post: post, LatestComments: comments})
	}
	return decorated, nil
}

// adjustCommentCount applies the delta in the background. The count is
// eventually consistent with comment writes; a dropped task only skews the
// ranking signal, never the comments themselves.
func (s *Service) adjustCommentCount(postID uuid.UUID, delta int64) {
	err := s.Pool.Submit(func(taskCtx context.Context) {
		if err := s.Repo.PostRepo.AddToCommentsCount(taskCtx, postID, delta); err != nil {
			s.Logger.ErrorWithContextf(taskCtx, err, "comment count for post %s not adjusted", postID)
			return
		}
		if err := s.Cache.Delete(taskCtx, postCacheKey(postID)); err != nil {
			s.Logger.WarningWithContextf(taskCtx, err, "cache invalidation for post %s failed", postID)
		}
	})
	if err == worker.ErrQueueFull || err == worker.ErrPoolClosed {
		s.Logger.WarningWithContextf(context.Background(), err, "comment count adjustment for post %s dropped", postID)
	}
}
