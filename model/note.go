package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultNoteTag = "General"

type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Tag         string             `bson:"tag" json:"tag"`
	Date        time.Time          `bson:"date" json:"date"`
}

// NoteChanges carries the fields of a partial note update. Nil fields are left unchanged.
type NoteChanges struct {
	Title       *string
	Description *string
	Tag         *string
}

// Empty reports whether no field would be written.
func (c NoteChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Tag == nil
}
