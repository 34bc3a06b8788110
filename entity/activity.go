package entity

// ActivityType selects which resize profile applies to an uploaded image.
type ActivityType string

const (
	ActivityPost    ActivityType = "post"
	ActivityComment ActivityType = "comment"
)
