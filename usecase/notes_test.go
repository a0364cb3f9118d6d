package usecase_test

import (
	"context"
	"testing"

	"inotecloud/dto"
	"inotecloud/model"
	"inotecloud/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndListNotes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "Alice Smith", "alice@example.com")
	bob := env.register(t, "Bobby Jones", "bob@example.com")

	first, err := env.notes.CreateNote(ctx, alice, dto.CreateNoteRequest{Title: "Groceries", Description: "milk and eggs"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultNoteTag, first.Tag)
	assert.False(t, first.Date.IsZero())

	second, err := env.notes.CreateNote(ctx, alice, dto.CreateNoteRequest{Title: "Work", Description: "finish report", Tag: "office"})
	require.NoError(t, err)
	assert.Equal(t, "office", second.Tag)

	_, err = env.notes.CreateNote(ctx, bob, dto.CreateNoteRequest{Title: "Bob's", Description: "private note"})
	require.NoError(t, err)

	notes, err := env.notes.GetUserNotes(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first.ID, notes[0].ID)
	assert.Equal(t, second.ID, notes[1].ID)

	empty, err := env.notes.GetUserNotes(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCreateNoteValidation(t *testing.T) {
	env := newTestEnv()
	alice := env.register(t, "Alice Smith", "alice@example.com")

	tests := []struct {
		name      string
		req       dto.CreateNoteRequest
		wantField string
	}{
		{name: "short title", req: dto.CreateNoteRequest{Title: "ab", Description: "long enough"}, wantField: "title"},
		{name: "short description", req: dto.CreateNoteRequest{Title: "Title", Description: "abcd"}, wantField: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.notes.CreateNote(context.Background(), alice, tt.req)
			var appErr *usecase.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, usecase.KindValidation, appErr.Kind)
			require.Len(t, appErr.Fields, 1)
			assert.Equal(t, tt.wantField, appErr.Fields[0].Field)
		})
	}
}

func TestUpdateNote(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "Alice Smith", "alice@example.com")
	bob := env.register(t, "Bobby Jones", "bob@example.com")

	note, err := env.notes.CreateNote(ctx, alice, dto.CreateNoteRequest{Title: "Original", Description: "original text", Tag: "misc"})
	require.NoError(t, err)
	noteID := note.ID.Hex()

	t.Run("non-owner is rejected and nothing changes", func(t *testing.T) {
		_, err := env.notes.UpdateNote(ctx, noteID, bob, model.NoteChanges{Title: strPtr("x")})
		assert.ErrorIs(t, err, usecase.ErrNotAuthorized)

		stored, err := env.store.FindNote(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", stored.Title)
	})

	t.Run("owner updates only provided fields", func(t *testing.T) {
		updated, err := env.notes.UpdateNote(ctx, noteID, alice, model.NoteChanges{Title: strPtr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "original text", updated.Description)
		assert.Equal(t, "misc", updated.Tag)
	})

	t.Run("empty changes return the note untouched", func(t *testing.T) {
		updated, err := env.notes.UpdateNote(ctx, noteID, alice, dto.UpdateNoteRequest{Title: strPtr("")}.ToChanges())
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})

	t.Run("unknown note", func(t *testing.T) {
		_, err := env.notes.UpdateNote(ctx, primitive.NewObjectID().Hex(), alice, model.NoteChanges{Title: strPtr("x")})
		assert.ErrorIs(t, err, usecase.ErrNoteNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := env.notes.UpdateNote(ctx, "123", alice, model.NoteChanges{Title: strPtr("x")})
		assert.ErrorIs(t, err, usecase.ErrInvalidID)
	})
}

func TestDeleteNote(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.register(t, "Alice Smith", "alice@example.com")
	bob := env.register(t, "Bobby Jones", "bob@example.com")

	create := func() string {
		note, err := env.notes.CreateNote(ctx, alice, dto.CreateNoteRequest{Title: "Delete me", Description: "soon gone"})
		require.NoError(t, err)
		return note.ID.Hex()
	}

	t.Run("public delete ignores ownership", func(t *testing.T) {
		id := create()
		deleted, err := env.notes.DeleteNote(ctx, id, "")
		require.NoError(t, err)
		assert.Equal(t, id, deleted.ID.Hex())

		_, err = env.notes.DeleteNote(ctx, id, "")
		assert.ErrorIs(t, err, usecase.ErrNoteNotFound)
	})

	t.Run("owner checked delete", func(t *testing.T) {
		id := create()
		_, err := env.notes.DeleteNote(ctx, id, bob)
		assert.ErrorIs(t, err, usecase.ErrNotAuthorized)

		deleted, err := env.notes.DeleteNote(ctx, id, alice)
		require.NoError(t, err)
		assert.Equal(t, id, deleted.ID.Hex())
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := env.notes.DeleteNote(ctx, "zzz", "")
		assert.ErrorIs(t, err, usecase.ErrInvalidID)
	})
}
