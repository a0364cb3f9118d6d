package usecase

import (
	"context"
	"strings"
	"time"

	"inotecloud/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessagesService is the shared message board. Author names are copied from the user record
// when a message or reply is written and never re-synced.
type MessagesService struct {
	MessagesRepo MessageStore
	UsersRepo    UserStore

	Now func() time.Time
}

func (svc *MessagesService) now() time.Time {
	if svc.Now == nil {
		return time.Now()
	}
	return svc.Now()
}

func checkContent(content, field string) error {
	if strings.TrimSpace(content) == "" {
		return ValidationError(field+" content cannot be empty", nil)
	}
	return nil
}

// author resolves the caller for operations that snapshot the author's name.
func (svc *MessagesService) author(ctx context.Context, userID string) (*model.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := svc.UsersRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, internal("looking up user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// owned loads a message and checks that userID wrote it.
func (svc *MessagesService) owned(ctx context.Context, messageID, userID string) (primitive.ObjectID, error) {
	id, err := parseID(messageID)
	if err != nil {
		return id, err
	}
	msg, err := svc.MessagesRepo.FindMessage(ctx, id)
	if err != nil {
		return id, internal("fetching message", err)
	}
	if msg == nil {
		return id, ErrMessageNotFound
	}
	if msg.User.Hex() != userID {
		return id, ErrNotAuthorized
	}
	return id, nil
}

// GetAllMessages returns the board, newest first.
func (svc *MessagesService) GetAllMessages(ctx context.Context) ([]*model.Message, error) {
	msgs, err := svc.MessagesRepo.FindAllMessages(ctx)
	if err != nil {
		return nil, internal("fetching messages", err)
	}
	if msgs == nil {
		msgs = []*model.Message{}
	}
	return msgs, nil
}

func (svc *MessagesService) CreateMessage(ctx context.Context, userID, content string) (*model.Message, error) {
	if err := checkContent(content, "Message"); err != nil {
		return nil, err
	}
	user, err := svc.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		User:     user.ID,
		UserName: user.Name,
		Content:  content,
		Date:     svc.now(),
		LikedBy:  []primitive.ObjectID{},
		Replies:  []model.Reply{},
	}
	if err := svc.MessagesRepo.CreateMessage(ctx, msg); err != nil {
		return nil, internal("creating message", err)
	}
	return msg, nil
}

func (svc *MessagesService) UpdateMessage(ctx context.Context, messageID, userID, content string) (*model.Message, error) {
	if err := checkContent(content, "Message"); err != nil {
		return nil, err
	}
	id, err := svc.owned(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	updated, err := svc.MessagesRepo.UpdateMessageContent(ctx, id, content)
	if err != nil {
		return nil, internal("updating message", err)
	}
	if updated == nil {
		return nil, ErrMessageNotFound
	}
	return updated, nil
}

func (svc *MessagesService) DeleteMessage(ctx context.Context, messageID, userID string) (*model.Message, error) {
	id, err := svc.owned(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	deleted, err := svc.MessagesRepo.DeleteMessage(ctx, id)
	if err != nil {
		return nil, internal("deleting message", err)
	}
	if deleted == nil {
		return nil, ErrMessageNotFound
	}
	return deleted, nil
}

// AddReply appends a reply from any authenticated user.
func (svc *MessagesService) AddReply(ctx context.Context, messageID, userID, content string) (*model.Message, error) {
	if err := checkContent(content, "Reply"); err != nil {
		return nil, err
	}
	user, err := svc.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(messageID)
	if err != nil {
		return nil, err
	}

	reply := model.Reply{
		ID:       primitive.NewObjectID(),
		User:     user.ID,
		UserName: user.Name,
		Content:  content,
		Date:     svc.now(),
	}
	updated, err := svc.MessagesRepo.PushReply(ctx, id, reply)
	if err != nil {
		return nil, internal("adding reply", err)
	}
	if updated == nil {
		return nil, ErrMessageNotFound
	}
	return updated, nil
}

// LikeMessage adds userID to the liker set. The membership check and the write are one store
// operation, so concurrent likes from the same user count once.
func (svc *MessagesService) LikeMessage(ctx context.Context, messageID, userID string) (*model.Message, error) {
	id, uid, err := parseIDs(messageID, userID)
	if err != nil {
		return nil, err
	}
	updated, err := svc.MessagesRepo.AddLike(ctx, id, uid)
	if err != nil {
		return nil, internal("liking message", err)
	}
	if updated != nil {
		return updated, nil
	}
	return nil, svc.missOrConflict(ctx, id, ErrAlreadyLiked)
}

// UnlikeMessage removes userID from the liker set; the count never drops below the set size.
func (svc *MessagesService) UnlikeMessage(ctx context.Context, messageID, userID string) (*model.Message, error) {
	id, uid, err := parseIDs(messageID, userID)
	if err != nil {
		return nil, err
	}
	updated, err := svc.MessagesRepo.RemoveLike(ctx, id, uid)
	if err != nil {
		return nil, internal("unliking message", err)
	}
	if updated != nil {
		return updated, nil
	}
	return nil, svc.missOrConflict(ctx, id, ErrNotLiked)
}

// missOrConflict explains why a conditional like/unlike matched nothing.
func (svc *MessagesService) missOrConflict(ctx context.Context, id primitive.ObjectID, conflict error) error {
	msg, err := svc.MessagesRepo.FindMessage(ctx, id)
	if err != nil {
		return internal("fetching message", err)
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	return conflict
}

func parseIDs(messageID, userID string) (primitive.ObjectID, primitive.ObjectID, error) {
	id, err := parseID(messageID)
	if err != nil {
		return id, primitive.NilObjectID, err
	}
	uid, err := parseID(userID)
	if err != nil {
		return id, uid, ErrUserNotFound
	}
	return id, uid, nil
}
