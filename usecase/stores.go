package usecase

import (
	"context"

	"inotecloud/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lookups return (nil, nil) when no document matches. Conditional mutations do the same when
// their condition does not hold; callers disambiguate with a follow-up lookup.

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	FindNotesByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Note, error)
	FindNote(ctx context.Context, id primitive.ObjectID) (*model.Note, error)
	UpdateNote(ctx context.Context, id primitive.ObjectID, changes model.NoteChanges) (*model.Note, error)
	// DeleteNote removes the note; a non-zero owner restricts the delete to that owner's note.
	DeleteNote(ctx context.Context, id, owner primitive.ObjectID) (*model.Note, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	FindAllMessages(ctx context.Context) ([]*model.Message, error)
	FindMessage(ctx context.Context, id primitive.ObjectID) (*model.Message, error)
	UpdateMessageContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Message, error)
	DeleteMessage(ctx context.Context, id primitive.ObjectID) (*model.Message, error)
	PushReply(ctx context.Context, id primitive.ObjectID, reply model.Reply) (*model.Message, error)
	// AddLike adds userID to the liker set and increments the count, only if userID is absent.
	AddLike(ctx context.Context, id, userID primitive.ObjectID) (*model.Message, error)
	// RemoveLike removes userID and decrements the count, only if userID is present.
	RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (*model.Message, error)
}

// parseID converts a hex id from a path or token.
func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
