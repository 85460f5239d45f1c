package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// TeamService handles business logic for staff members
type TeamService struct {
	repo   repositories.TeamRepository
	events providers.EventPublisher
}

// NewTeamService creates a new team service
func NewTeamService(repo repositories.TeamRepository, events providers.EventPublisher) *TeamService {
	return &TeamService{
		repo:   repo,
		events: events,
	}
}

func validateMember(member *entities.TeamMember) error {
	if member == nil || strings.TrimSpace(member.Name) == "" {
		return apperrors.NewValidationError("team member name is required")
	}
	if strings.TrimSpace(member.Specialty) == "" {
		return apperrors.NewValidationError("specialty is required")
	}
	return nil
}

// Create adds a team member
func (s *TeamService) Create(ctx context.Context, member *entities.TeamMember) (*entities.TeamMember, error) {
	if err := validateMember(member); err != nil {
		return nil, err
	}

	now := time.Now()
	created := &entities.TeamMember{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(member.Name),
		Specialty:       strings.TrimSpace(member.Specialty),
		Description:     member.Description,
		ProfileImageURL: member.ProfileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	publishCatalogChange(ctx, s.events, entities.AggregateTeamMember, created.ID, actionCreated)
	return created, nil
}

// GetByID retrieves a team member by ID
func (s *TeamService) GetByID(ctx context.Context, id string) (*entities.TeamMember, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all team members
func (s *TeamService) List(ctx context.Context) ([]*entities.TeamMember, error) {
	return s.repo.List(ctx)
}

// Update replaces a team member's details
func (s *TeamService) Update(ctx context.Context, id string, member *entities.TeamMember) (*entities.TeamMember, error) {
	if err := validateMember(member); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(member.Name)
	existing.Specialty = strings.TrimSpace(member.Specialty)
	existing.Description = member.Description
	existing.ProfileImageURL = member.ProfileImageURL
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	publishCatalogChange(ctx, s.events, entities.AggregateTeamMember, id, actionUpdated)
	return existing, nil
}

// Delete removes a team member
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishCatalogChange(ctx, s.events, entities.AggregateTeamMember, id, actionDeleted)
	return nil
}
