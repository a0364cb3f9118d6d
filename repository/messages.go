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

type MessagesRepo struct {
	MongoCollection *mongo.Collection
}

func GetMessagesRepo(db *mongo.Database) *MessagesRepo {
	return &MessagesRepo{
		MongoCollection: db.Collection(MessagesCollection),
	}
}

func (r *MessagesRepo) CreateMessage(ctx context.Context, msg *model.Message) error {
	timer := utils.TrackDBOperation("insert", MessagesCollection)
	defer timer.ObserveDuration()

	if msg.User.IsZero() {
		return errors.New("user ID is required")
	}
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.LikedBy == nil {
		msg.LikedBy = []primitive.ObjectID{}
	}
	if msg.Replies == nil {
		msg.Replies = []model.Reply{}
	}

	_, err := r.MongoCollection.InsertOne(ctx, msg)
	return err
}

// FindAllMessages returns every message, newest first.
func (r *MessagesRepo) FindAllMessages(ctx context.Context) ([]*model.Message, error) {
	timer := utils.TrackDBOperation("find", MessagesCollection)
	defer timer.ObserveDuration()

	msgs := []*model.Message{}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *MessagesRepo) FindMessage(ctx context.Context, id primitive.ObjectID) (*model.Message, error) {
	timer := utils.TrackDBOperation("find", MessagesCollection)
	defer timer.ObserveDuration()

	var msg model.Message
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *MessagesRepo) UpdateMessageContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Message, error) {
	timer := utils.TrackDBOperation("update", MessagesCollection)
	defer timer.ObserveDuration()

	return findOneAndUpdate[model.Message](ctx, r.MongoCollection,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content}})
}

func (r *MessagesRepo) DeleteMessage(ctx context.Context, id primitive.ObjectID) (*model.Message, error) {
	timer := utils.TrackDBOperation("delete", MessagesCollection)
	defer timer.ObserveDuration()

	var msg model.Message
	err := r.MongoCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *MessagesRepo) PushReply(ctx context.Context, id primitive.ObjectID, reply model.Reply) (*model.Message, error) {
	timer := utils.TrackDBOperation("update", MessagesCollection)
	defer timer.ObserveDuration()

	return findOneAndUpdate[model.Message](ctx, r.MongoCollection,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"replies": reply}})
}

// AddLike is a single conditional update: it matches only while userID is absent from
// likedBy, so the push and the increment happen together or not at all.
func (r *MessagesRepo) AddLike(ctx context.Context, id, userID primitive.ObjectID) (*model.Message, error) {
	timer := utils.TrackDBOperation("update", MessagesCollection)
	defer timer.ObserveDuration()

	return findOneAndUpdate[model.Message](ctx, r.MongoCollection,
		bson.M{"_id": id, "likedBy": bson.M{"$ne": userID}},
		bson.M{
			"$inc":  bson.M{"likes": 1},
			"$push": bson.M{"likedBy": userID},
		})
}

// RemoveLike matches only while userID is in likedBy.
func (r *MessagesRepo) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (*model.Message, error) {
	timer := utils.TrackDBOperation("update", MessagesCollection)
	defer timer.ObserveDuration()

	return findOneAndUpdate[model.Message](ctx, r.MongoCollection,
		bson.M{"_id": id, "likedBy": userID},
		bson.M{
			"$inc":  bson.M{"likes": -1},
			"$pull": bson.M{"likedBy": userID},
		})
}
