package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/civil"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrEmailAlreadyExists  = fmt.Errorf("email already exists: %w", domain.ErrDuplicateEntry)
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// UserService handles user management business logic
type UserService struct {
	store *repositories.Store
}

// NewUserService creates a new user service
func NewUserService(store *repositories.Store) *UserService {
	return &UserService{store: store}
}

// UpdateUserInput represents update user input (for admin)
type UpdateUserInput struct {
	Email       *string     `json:"email"`
	FirstName   *string     `json:"first_name"`
	LastName    *string     `json:"last_name"`
	Role        *string     `json:"role"`
	PhoneNumber *string     `json:"phone_number"`
	Address     *string     `json:"address"`
	DateOfBirth *civil.Date `json:"date_of_birth"`
	IsActive    *bool       `json:"is_active"`
}

// UpdateProfileInput represents update profile input (for self); role and status stay untouched
type UpdateProfileInput struct {
	Email       *string     `json:"email"`
	FirstName   *string     `json:"first_name"`
	LastName    *string     `json:"last_name"`
	PhoneNumber *string     `json:"phone_number"`
	Address     *string     `json:"address"`
	DateOfBirth *civil.Date `json:"date_of_birth"`
}

// ListUsers lists users with filters
func (s *UserService) ListUsers(ctx context.Context, filter repositories.UserFilter, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.store.Users.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*models.UserResponse, len(users))
	for i, user := range users {
		out[i] = userResponse(ctx, s.store, user)
	}
	return out, total, nil
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return userResponse(ctx, s.store, user), nil
}

// UpdateUser updates a user on behalf of an administrator
func (s *UserService) UpdateUser(ctx context.Context, id uint, adminID uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	if input.Role != nil && *input.Role != user.Role {
		if id == adminID {
			return nil, ErrCannotChangeOwnRole
		}
		if !domain.Role(*input.Role).IsValid() {
			return nil, domain.Invalid("role", "must be admin, manager, finance_officer or member")
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.applyProfile(ctx, user, &UpdateProfileInput{
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		DateOfBirth: input.DateOfBirth,
	}); err != nil {
		return nil, err
	}

	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return userResponse(ctx, s.store, user), nil
}

// DeleteUser removes a user; an attached member profile goes with all its records
func (s *UserService) DeleteUser(ctx context.Context, id uint, adminID uint) error {
	if id == adminID {
		return ErrCannotDeleteSelf
	}

	err := s.store.Atomic(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Users.GetByID(ctx, id); err != nil {
			return notFound(err, ErrUserNotFound)
		}
		member, err := tx.Members.GetByUserID(ctx, id)
		switch {
		case err == nil:
			if err := tx.Members.Delete(ctx, member.ID); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("User deleted", "id", id, "by", adminID)
	return nil
}

// GetProfile gets own profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	return s.GetUser(ctx, userID)
}

// UpdateProfile updates own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	if err := s.applyProfile(ctx, user, input); err != nil {
		return nil, err
	}
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return userResponse(ctx, s.store, user), nil
}

func (s *UserService) applyProfile(ctx context.Context, user *models.User, input *UpdateProfileInput) error {
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.store.Users.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.DateOfBirth != nil {
		dob := input.DateOfBirth.Time
		user.DateOfBirth = &dob
	}
	return nil
}
