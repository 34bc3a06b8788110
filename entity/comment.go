package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aakash/content-server/apperror"
)

// Comment is a child content unit referencing its Post by id. The reference is
// checked when the comment is created, not enforced by a store constraint.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Creator   string    `json:"creator" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(c.Content) == "" {
		fields["content"] = "content cannot be empty"
	}
	if strings.TrimSpace(c.Creator) == "" {
		fields["creator"] = "creator cannot be empty"
	}
	if len(fields) > 0 {
		return &apperror.ValidationError{Fields: fields}
	}
	return nil
}
