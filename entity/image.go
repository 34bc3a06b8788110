package entity

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SupportedImageExtensions are the upload formats accepted before any state
// is created for a post.
var SupportedImageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// Image is the stored metadata of a post's resized variant. It is persisted
// only after the variant has been uploaded; a failed ingestion never writes
// this record.
type Image struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	PostID        uuid.UUID      `json:"post_id" gorm:"type:uuid;not null;index"`
	BucketName    string         `json:"bucket_name" gorm:"type:varchar(255);not null"`
	Location      string         `json:"location" gorm:"type:varchar(1024);not null"`
	AccessURI     string         `json:"access_uri" gorm:"type:varchar(1024)"`
	SizeInKB      int64          `json:"size_in_kb"`
	Type          string         `json:"type" gorm:"type:varchar(16)"`
	TransformMeta datatypes.JSON `json:"transform_meta,omitempty"`
	CreatedAt     time.Time      `json:"created_at" gorm:"not null"`
}

func (Image) TableName() string { return "images" }

// FileExtension extracts the lower-cased extension of an uploaded filename
// without the leading dot.
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
