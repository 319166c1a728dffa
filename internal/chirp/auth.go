package chirp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"chirp/internal/password"
)

type (
	// Registration is the candidate input from the register form.
	Registration struct {
		Username  string
		Email     string
		Password  string
		Password2 string
	}

	// LoginResult carries either the authenticated user or the message to
	// re-render the form with. Never both.
	LoginResult struct {
		User  *User
		Error string
	}

	// Auth validates registration input, checks credentials, and manages
	// the session rows behind login/logout.
	Auth struct {
		repo Repository
	}
)

func NewAuth(repo Repository) Auth {
	return Auth{repo: repo}
}

// ValidateRegistration applies the registration rules in a fixed order and
// returns the first violated rule's message, or "" when everything passes.
// The order decides which single error the form shows when several fields
// are bad at once, so it can't be shuffled.
func ValidateRegistration(reg Registration) string {
	switch {
	case reg.Username == "":
		return "You have to enter a username"
	case reg.Password == "":
		return "You have to enter a password"
	case reg.Password != reg.Password2:
		return "The two passwords do not match"
	case !strings.Contains(reg.Email, "@"):
		return "You have to enter a valid email address"
	}

	return ""
}

// Register validates the candidate and persists a new user. A non-empty
// message means the form should be re-rendered with it; nothing was
// persisted in that case.
func (a Auth) Register(ctx context.Context, reg Registration) (string, error) {
	if msg := ValidateRegistration(reg); msg != "" {
		return msg, nil
	}

	_, err := a.repo.UserByUsername(ctx, reg.Username)
	if err == nil {
		return "The username is already taken", nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("error looking up username: %w", err)
	}

	hash, err := password.Hash(reg.Password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	err = a.repo.InsertUser(ctx, User{
		ID:       uuid.NewString(),
		Username: reg.Username,
		Email:    reg.Email,
		PwHash:   hash,
	})
	// A racing registration can still win the unique constraint.
	if errors.Is(err, ErrConflict) {
		return "The username is already taken", nil
	}
	if err != nil {
		return "", fmt.Errorf("error inserting user: %w", err)
	}

	return "", nil
}

// Login checks the credentials against the stored hash. Unknown usernames
// and bad passwords come back as distinguishable form messages, not errors.
func (a Auth) Login(ctx context.Context, username, pw string) (LoginResult, error) {
	usr, err := a.repo.UserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return LoginResult{Error: "Invalid username"}, nil
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("error looking up username: %w", err)
	}

	ok, err := password.Compare(pw, usr.PwHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("error comparing password: %w", err)
	}
	if !ok {
		return LoginResult{Error: "Invalid password"}, nil
	}

	return LoginResult{User: &usr}, nil
}

// StartSession mints an opaque token for the user and persists the mapping.
func (a Auth) StartSession(ctx context.Context, userID string) (string, error) {
	sess := Session{
		Token:  uuid.NewString(),
		UserID: userID,
	}
	if err := a.repo.InsertSession(ctx, sess); err != nil {
		return "", fmt.Errorf("error inserting session: %w", err)
	}

	return sess.Token, nil
}

// EndSession forgets the token. Unknown tokens are a no-op.
func (a Auth) EndSession(ctx context.Context, token string) error {
	return a.repo.DeleteSession(ctx, token)
}

// SessionUser resolves a token to its user, or [ErrNotFound] for tokens
// that never existed or have been ended.
func (a Auth) SessionUser(ctx context.Context, token string) (User, error) {
	return a.repo.SessionUser(ctx, token)
}
