package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robertpope/devtrackr/internal/services/tracker/storage"
	"github.com/robertpope/devtrackr/internal/services/tracker/user"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	nextID  int64
	byID    map[int64]user.User
	byEmail map[string]int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		nextID:  1,
		byID:    make(map[int64]user.User),
		byEmail: make(map[string]int64),
	}
}

func (f *fakeUserStore) CreateUser(_ context.Context, u user.User) (user.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return user.User{}, storage.ErrDuplicateEmail
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, userID int64) (user.User, error) {
	found, ok := f.byID[userID]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return found, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return f.byID[id], nil
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]user.User, error) {
	users := make([]user.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, userID int64) error {
	found, ok := f.byID[userID]
	if !ok {
		return storage.ErrNotFound
	}
	delete(f.byEmail, found.Email)
	delete(f.byID, userID)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	now := func() time.Time { return time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC) }
	tokens := NewTokenIssuer("test-secret", 30*time.Minute, now)
	return NewService(store, tokens, now), store
}

func TestRegisterNormalizesAndRejectsDuplicates(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Register(ctx, "USER@Example.com", "longenoughpw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Email != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned user id")
	}
	if created.PasswordHash == "longenoughpw" {
		t.Fatal("expected hashed password, got plaintext")
	}

	_, err = service.Register(ctx, "user@example.com", "other")
	if !errors.Is(err, storage.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "not-an-email", "longenoughpw"); !errors.Is(err, user.ErrInvalidEmail) {
		t.Fatalf("expected invalid email error, got %v", err)
	}

	long := make([]byte, MaxPasswordBytes+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := service.Register(ctx, "alice@example.com", string(long)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected password bound error, got %v", err)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "u@example.com", "secretpw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Login(ctx, "u@example.com", "wrongpw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody@example.com", "secretpw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	token, err := service.Login(ctx, "U@Example.com", "secretpw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resolved, err := service.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if resolved.ID != registered.ID {
		t.Fatalf("expected token to resolve to user %d, got %d", registered.ID, resolved.ID)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "gone@example.com", "secretpw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := service.Login(ctx, "gone@example.com", "secretpw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := store.DeleteUser(ctx, registered.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// A stale token must fail as a credential problem, not as not-found.
	_, err = service.Authenticate(ctx, token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error for deleted user, got %v", err)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Authenticate(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}
