package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a post on the shared board. UserName is a snapshot of the author's name taken at
// creation time; renaming the author later does not touch existing messages or replies.
//
// Likes always equals len(LikedBy) and LikedBy never holds the same user twice. Both are only
// written together by a single conditional update.
type Message struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	User     primitive.ObjectID   `bson:"user" json:"user"`
	UserName string               `bson:"userName" json:"userName"`
	Content  string               `bson:"content" json:"content"`
	Date     time.Time            `bson:"date" json:"date"`
	Likes    int                  `bson:"likes" json:"likes"`
	LikedBy  []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	Replies  []Reply              `bson:"replies" json:"replies"`
}

// Reply is appended to a message and never edited afterwards.
type Reply struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	UserName string             `bson:"userName" json:"userName"`
	Content  string             `bson:"content" json:"content"`
	Date     time.Time          `bson:"date" json:"date"`
}

// LikedByUser reports whether userID is in the liker set.
func (m *Message) LikedByUser(userID primitive.ObjectID) bool {
	for _, id := range m.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
