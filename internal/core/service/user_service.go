package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

type userService struct {
	users       ports.UserRepository
	assignments ports.BusinessUserRepository
	businesses  ports.BusinessRepository
	log         zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	assignments ports.BusinessUserRepository,
	businesses ports.BusinessRepository,
	log zerolog.Logger,
) ports.UserService {
	return &userService{users: users, assignments: assignments, businesses: businesses, log: log}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := s.assignments.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.UserProfile{User: user, Assignments: list}, nil
}

func (s *userService) AssignToBusiness(ctx context.Context, userID, businessID int64, role domain.Role) (*domain.BusinessUser, error) {
	if userID <= 0 || businessID <= 0 || role == "" {
		return nil, domain.Invalid("User ID, Business ID, and role are required")
	}
	if !role.Valid() {
		return nil, domain.Invalid("Invalid role")
	}

	if exists, err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.ErrUserNotFound
	}
	if _, err := s.businesses.FindByID(ctx, businessID); err != nil {
		return nil, err
	}

	if existing, err := s.assignments.FindByUserAndBusiness(ctx, userID, businessID); err == nil && existing != nil {
		return nil, domain.ErrAssignmentExists
	} else if err != nil && err != domain.ErrAssignmentMissing {
		return nil, err
	}

	created, err := s.assignments.Create(ctx, &domain.BusinessUser{
		UserID:     userID,
		BusinessID: businessID,
		Role:       role,
		IsActive:   true,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", userID).Int64("business_id", businessID).Str("role", string(role)).Msg("user assigned to business")
	return created, nil
}

func (s *userService) Assignment(ctx context.Context, userID, businessID int64) (*domain.BusinessUser, error) {
	if userID <= 0 || businessID <= 0 {
		return nil, domain.Invalid("Valid User ID and Business ID are required")
	}
	return s.assignments.FindByUserAndBusiness(ctx, userID, businessID)
}

func (s *userService) UserBusinesses(ctx context.Context, userID int64) ([]domain.BusinessUser, error) {
	if userID <= 0 {
		return nil, domain.Invalid("Valid User ID is required")
	}
	return s.assignments.FindByUser(ctx, userID)
}

func (s *userService) BusinessUsers(ctx context.Context, businessID int64, role domain.Role, activeOnly bool) ([]domain.BusinessUser, error) {
	if businessID <= 0 {
		return nil, domain.Invalid("Valid Business ID is required")
	}
	if role != "" && !role.Valid() {
		return nil, domain.Invalid("Invalid role")
	}
	return s.assignments.FindByBusiness(ctx, businessID, role, activeOnly)
}

func (s *userService) UpdateAssignment(ctx context.Context, userID, businessID int64, update ports.UpdateAssignmentInput) (*domain.BusinessUser, error) {
	if update.Role != nil && !update.Role.Valid() {
		return nil, domain.Invalid("Invalid role")
	}
	existing, err := s.assignments.FindByUserAndBusiness(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}
	return s.assignments.Update(ctx, existing.ID, update)
}

func (s *userService) RemoveAssignment(ctx context.Context, userID, businessID int64) error {
	existing, err := s.assignments.FindByUserAndBusiness(ctx, userID, businessID)
	if err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, existing.ID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Int64("business_id", businessID).Msg("assignment removed")
	return nil
}
