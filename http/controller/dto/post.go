package dto

type UpdatePostRequestDTO struct {
	Content string `json:"content"`
}
