package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aakash/content-server/apperror"
)

// MaxCaptionLength bounds the post caption. A caption may be empty.
const MaxCaptionLength = 2200

// Post is the top-level content unit. CommentsCount is maintained exclusively
// through atomic in-store additions (PostRepository.AddToCommentsCount); it is
// never read-modified-written from application memory.
type Post struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Content        string     `json:"content" gorm:"type:varchar(2200)"`
	Creator        string     `json:"creator" gorm:"type:varchar(255);not null"`
	CommentsCount  int64      `json:"comments_count" gorm:"not null;default:0;index:idx_posts_activity,priority:1"`
	ImageID        *uuid.UUID `json:"image_id,omitempty" gorm:"type:uuid"`
	ImageAccessURI *string    `json:"image_access_uri,omitempty" gorm:"type:varchar(1024)"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;index:idx_posts_activity,priority:2"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) Validate() error {
	fields := map[string]string{}
	if len(p.Content) > MaxCaptionLength {
		fields["content"] = "caption cannot exceed 2200 characters"
	}
	if strings.TrimSpace(p.Creator) == "" {
		fields["creator"] = "creator cannot be empty"
	}
	if len(fields) > 0 {
		return &apperror.ValidationError{Fields: fields}
	}
	return nil
}
