package dto

type ContentRequest struct {
	Content string `json:"content" validate:"required"`
}
