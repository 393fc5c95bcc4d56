// Package services contains server-side business logic: the user directory
// and the tenant-scoped category, transaction and budget stores.
package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
)

var emailPattern = regexp.MustCompile(`^(.+)@(.+)$`)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserService registers users and checks their credentials.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	logger      logging.Logger
	dummyHash   string
}

// NewUserService constructs a UserService. The hasher is also used once to
// prepare the hash compared against when an email is unknown.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, logger logging.Logger) (*UserService, error) {
	dummy, err := hasher.Hash("unknown-user-placeholder")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		logger:      logger.With("module", "users"),
		dummyHash:   dummy,
	}, nil
}

// Register creates a user with a lower-cased email and a hashed password.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if !emailPattern.MatchString(email) {
		return nil, common.ErrInvalidEmailFormat
	}
	if err := checkPassword(req.Password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, wrapInternal("check email", err)
	}
	if exists {
		return nil, common.ErrEmailAlreadyInUse
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, wrapInternal("hash password", err)
	}

	user, err := repo.Create(ctx, &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, wrapInternal("create user", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login returns the user whose credentials match. Unknown emails and wrong
// passwords both yield common.ErrInvalidCredentials; only the log tells
// them apart.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.logger.Warn(ctx, "login failed", "reason", "unknown_email", "user_ref", userRef(email))
			return nil, common.ErrInvalidCredentials
		}
		return nil, wrapInternal("find user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn(ctx, "login failed", "reason", "password_mismatch", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// Get returns the user with id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, wrapInternal("get user", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(password string) error {
	if len(password) == 0 || len(password) > auth.MaxPasswordBytes {
		return badRequest(fmt.Sprintf("password must be 1 to %d bytes", auth.MaxPasswordBytes))
	}
	return nil
}

// userRef is a stable, non-reversible reference to an email for logs.
func userRef(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:6])
}
