package usecase_test

import (
	"context"
	"testing"
	"time"

	"inotecloud/dto"
	"inotecloud/internal/memstore"
	"inotecloud/services"
	"inotecloud/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store    *memstore.Store
	tokens   *services.TokenService
	auth     *usecase.AuthService
	notes    *usecase.NotesService
	messages *usecase.MessagesService
}

func newTestEnv() *testEnv {
	store := memstore.New()
	tokens := services.NewTokenService("test_secret_key", 10*time.Minute)
	return &testEnv{
		store:  store,
		tokens: tokens,
		auth: &usecase.AuthService{
			Users:       store,
			Tokens:      tokens,
			RegisterTTL: time.Hour,
			LoginTTL:    24 * time.Hour,
			BcryptCost:  bcrypt.MinCost,
		},
		notes:    &usecase.NotesService{NotesRepo: store},
		messages: &usecase.MessagesService{MessagesRepo: store, UsersRepo: store},
	}
}

// register creates a user and returns its hex id.
func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	res, err := e.auth.Register(context.Background(), dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return res.User.ID.Hex()
}

func strPtr(s string) *string { return &s }
