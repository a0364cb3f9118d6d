package dto

import "inotecloud/model"

type CreateNoteRequest struct {
	Title       string `json:"title" validate:"min=3"`
	Description string `json:"description" validate:"min=5"`
	Tag         string `json:"tag"`
}

// UpdateNoteRequest is a partial update; absent or empty fields are left unchanged.
type UpdateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
}

func (r UpdateNoteRequest) ToChanges() model.NoteChanges {
	return model.NoteChanges{
		Title:       nonEmpty(r.Title),
		Description: nonEmpty(r.Description),
		Tag:         nonEmpty(r.Tag),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
