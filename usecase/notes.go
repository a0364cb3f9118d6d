package usecase

import (
	"context"
	"time"

	"inotecloud/dto"
	"inotecloud/model"
	"inotecloud/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotesService struct {
	NotesRepo NoteStore

	Now func() time.Time
}

func (svc *NotesService) now() time.Time {
	if svc.Now == nil {
		return time.Now()
	}
	return svc.Now()
}

// GetUserNotes returns every note owned by userID in insertion order.
func (svc *NotesService) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	notes, err := svc.NotesRepo.FindNotesByUser(ctx, owner)
	if err != nil {
		return nil, internal("fetching notes", err)
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	return notes, nil
}

func (svc *NotesService) CreateNote(ctx context.Context, userID string, req dto.CreateNoteRequest) (*model.Note, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	fields, err := utils.ValidateStruct(req)
	if err != nil {
		return nil, internal("validating note", err)
	}
	if fields != nil {
		return nil, ValidationError("Invalid note", fields)
	}

	tag := req.Tag
	if tag == "" {
		tag = model.DefaultNoteTag
	}
	note := &model.Note{
		User:        owner,
		Title:       req.Title,
		Description: req.Description,
		Tag:         tag,
		Date:        svc.now(),
	}
	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, internal("creating note", err)
	}
	return note, nil
}

// UpdateNote merges the provided fields into a note owned by userID.
func (svc *NotesService) UpdateNote(ctx context.Context, noteID, userID string, changes model.NoteChanges) (*model.Note, error) {
	id, err := parseID(noteID)
	if err != nil {
		return nil, err
	}

	existing, err := svc.NotesRepo.FindNote(ctx, id)
	if err != nil {
		return nil, internal("fetching note", err)
	}
	if existing == nil {
		return nil, ErrNoteNotFound
	}
	if existing.User.Hex() != userID {
		return nil, ErrNotAuthorized
	}
	if changes.Empty() {
		return existing, nil
	}

	updated, err := svc.NotesRepo.UpdateNote(ctx, id, changes)
	if err != nil {
		return nil, internal("updating note", err)
	}
	if updated == nil {
		// deleted between the read and the write
		return nil, ErrNoteNotFound
	}
	return updated, nil
}

// DeleteNote removes a note. An empty requesterID skips the ownership check, which is how the
// public delete endpoint behaves; strict mode passes the caller's id.
func (svc *NotesService) DeleteNote(ctx context.Context, noteID, requesterID string) (*model.Note, error) {
	id, err := parseID(noteID)
	if err != nil {
		return nil, err
	}

	owner := primitive.NilObjectID
	if requesterID != "" {
		existing, err := svc.NotesRepo.FindNote(ctx, id)
		if err != nil {
			return nil, internal("fetching note", err)
		}
		if existing == nil {
			return nil, ErrNoteNotFound
		}
		if existing.User.Hex() != requesterID {
			return nil, ErrNotAuthorized
		}
		owner = existing.User
	}

	deleted, err := svc.NotesRepo.DeleteNote(ctx, id, owner)
	if err != nil {
		return nil, internal("deleting note", err)
	}
	if deleted == nil {
		return nil, ErrNoteNotFound
	}
	return deleted, nil
}
