package repository

import (
	"context"
	"errors"

	"inotecloud/model"
	"inotecloud/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(db *mongo.Database) *NotesRepo {
	return &NotesRepo{
		MongoCollection: db.Collection(NotesCollection),
	}
}

// CreateNote creates a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", NotesCollection)
	defer timer.ObserveDuration()

	if note.User.IsZero() {
		return errors.New("user ID is required")
	}
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}

	_, err := r.MongoCollection.InsertOne(ctx, note)
	return err
}

// FindNotesByUser retrieves all notes for a user in insertion order
func (r *NotesRepo) FindNotesByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", NotesCollection)
	defer timer.ObserveDuration()

	notes := []*model.Note{}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// FindNote retrieves a specific note
func (r *NotesRepo) FindNote(ctx context.Context, id primitive.ObjectID) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", NotesCollection)
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// UpdateNote sets only the provided fields and returns the note after the update.
func (r *NotesRepo) UpdateNote(ctx context.Context, id primitive.ObjectID, changes model.NoteChanges) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", NotesCollection)
	defer timer.ObserveDuration()

	set := bson.M{}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.Tag != nil {
		set["tag"] = *changes.Tag
	}

	return findOneAndUpdate[model.Note](ctx, r.MongoCollection, bson.M{"_id": id}, bson.M{"$set": set})
}

// DeleteNote deletes a specific note; a non-zero owner narrows the match to that owner.
func (r *NotesRepo) DeleteNote(ctx context.Context, id, owner primitive.ObjectID) (*model.Note, error) {
	timer := utils.TrackDBOperation("delete", NotesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"_id": id}
	if !owner.IsZero() {
		filter["user"] = owner
	}

	var note model.Note
	err := r.MongoCollection.FindOneAndDelete(ctx, filter).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// findOneAndUpdate applies update to the first match and decodes the document after the
// update. No match is (nil, nil).
func findOneAndUpdate[T any](ctx context.Context, coll *mongo.Collection, filter, update bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
