package dto

type CreateCommentRequestDTO struct {
	Content string `json:"content"`
	Creator string `json:"creator"`
}
