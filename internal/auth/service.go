package auth

import (
	"context"
	"errors"

	"backend-tripplanner/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost keeps verification in the tens-of-milliseconds range.
const bcryptCost = 12

// dummyHash is compared against when the username does not exist, so a
// rejection costs one bcrypt comparison regardless of the cause.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcryptCost)

var hashPasswordFn = bcrypt.GenerateFromPassword

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Register hashes the password and persists a new user. The username unique
// constraint is the authoritative duplicate guard; the lookup before insert
// is only a fast path.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if req.Username == "" || req.Password == "" {
		return User{}, ErrMissingFields
	}

	if _, err := s.findByUsername(ctx, req.Username); err == nil {
		return User{}, ErrDuplicateUsername
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return User{}, err
	}

	hash, err := hashPasswordFn([]byte(req.Password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, user.ID, user.Username, user.PasswordHash)
	if err := row.Scan(&user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicateUsername
		}
		return User{}, err
	}
	return user, nil
}

// Authenticate resolves basic-auth credentials to a user. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) findByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username=$1
	`, username)

	var user User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		return User{}, err
	}
	return user, nil
}
