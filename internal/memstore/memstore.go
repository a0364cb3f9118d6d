// Package memstore is an in-process document store with the same semantics as the MongoDB
// repositories, including conditional like/unlike updates. It backs STORE_DRIVER=memory and the
// service tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"inotecloud/model"
	"inotecloud/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one lock, so each method is atomic per document.
type Store struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*model.User
	notes    map[primitive.ObjectID]*model.Note
	messages map[primitive.ObjectID]*model.Message
	// insertion order for notes
	noteSeq []primitive.ObjectID
}

func New() *Store {
	return &Store{
		users:    make(map[primitive.ObjectID]*model.User),
		notes:    make(map[primitive.ObjectID]*model.Note),
		messages: make(map[primitive.ObjectID]*model.Message),
	}
}

func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	u := *user
	s.users[u.ID] = &u
	return nil
}

func (s *Store) FindUserByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// CountUsers is used by tests to check that failed registrations create nothing.
func (s *Store) CountUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) CreateNote(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	n := *note
	s.notes[n.ID] = &n
	s.noteSeq = append(s.noteSeq, n.ID)
	return nil
}

func (s *Store) FindNotesByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := []*model.Note{}
	for _, id := range s.noteSeq {
		if n, ok := s.notes[id]; ok && n.User == userID {
			cp := *n
			notes = append(notes, &cp)
		}
	}
	return notes, nil
}

func (s *Store) FindNote(_ context.Context, id primitive.ObjectID) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.notes[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) UpdateNote(_ context.Context, id primitive.ObjectID, changes model.NoteChanges) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	if changes.Title != nil {
		n.Title = *changes.Title
	}
	if changes.Description != nil {
		n.Description = *changes.Description
	}
	if changes.Tag != nil {
		n.Tag = *changes.Tag
	}
	cp := *n
	return &cp, nil
}

func (s *Store) DeleteNote(_ context.Context, id, owner primitive.ObjectID) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok || (!owner.IsZero() && n.User != owner) {
		return nil, nil
	}
	delete(s.notes, id)
	for i, seqID := range s.noteSeq {
		if seqID == id {
			s.noteSeq = append(s.noteSeq[:i], s.noteSeq[i+1:]...)
			break
		}
	}
	return n, nil
}

func copyMessage(m *model.Message) *model.Message {
	cp := *m
	cp.LikedBy = append([]primitive.ObjectID{}, m.LikedBy...)
	cp.Replies = append([]model.Reply{}, m.Replies...)
	return &cp
}

func (s *Store) CreateMessage(_ context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.LikedBy == nil {
		msg.LikedBy = []primitive.ObjectID{}
	}
	if msg.Replies == nil {
		msg.Replies = []model.Reply{}
	}
	s.messages[msg.ID] = copyMessage(msg)
	return nil
}

func (s *Store) FindAllMessages(_ context.Context) ([]*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]*model.Message, 0, len(s.messages))
	for _, m := range s.messages {
		msgs = append(msgs, copyMessage(m))
	}
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].Date.Equal(msgs[j].Date) {
			return msgs[i].ID.Hex() > msgs[j].ID.Hex()
		}
		return msgs[i].Date.After(msgs[j].Date)
	})
	return msgs, nil
}

func (s *Store) FindMessage(_ context.Context, id primitive.ObjectID) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.messages[id]; ok {
		return copyMessage(m), nil
	}
	return nil, nil
}

func (s *Store) UpdateMessageContent(_ context.Context, id primitive.ObjectID, content string) (*model.Message, error) {
	return s.mutate(id, func(m *model.Message) bool {
		m.Content = content
		return true
	})
}

func (s *Store) DeleteMessage(_ context.Context, id primitive.ObjectID) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, nil
	}
	delete(s.messages, id)
	return m, nil
}

func (s *Store) PushReply(_ context.Context, id primitive.ObjectID, reply model.Reply) (*model.Message, error) {
	return s.mutate(id, func(m *model.Message) bool {
		m.Replies = append(m.Replies, reply)
		return true
	})
}

func (s *Store) AddLike(_ context.Context, id, userID primitive.ObjectID) (*model.Message, error) {
	return s.mutate(id, func(m *model.Message) bool {
		if m.LikedByUser(userID) {
			return false
		}
		m.LikedBy = append(m.LikedBy, userID)
		m.Likes++
		return true
	})
}

func (s *Store) RemoveLike(_ context.Context, id, userID primitive.ObjectID) (*model.Message, error) {
	return s.mutate(id, func(m *model.Message) bool {
		for i, liker := range m.LikedBy {
			if liker == userID {
				m.LikedBy = append(m.LikedBy[:i], m.LikedBy[i+1:]...)
				m.Likes--
				return true
			}
		}
		return false
	})
}

// mutate applies fn to the stored message under the lock. fn reports whether its condition
// held; when it did not, nothing is written and (nil, nil) is returned.
func (s *Store) mutate(id primitive.ObjectID, fn func(*model.Message) bool) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, nil
	}
	working := copyMessage(m)
	if !fn(working) {
		return nil, nil
	}
	s.messages[id] = working
	return copyMessage(working), nil
}
