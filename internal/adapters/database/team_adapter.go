package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

var teamColumns = []interface{}{
	"id", "name", "specialty", "description", "profile_image_url", "created_at", "updated_at",
}

// TeamAdapter implements the TeamRepository interface
type TeamAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTeamAdapter creates a new team adapter
func NewTeamAdapter(client *postgres.Client) repositories.TeamRepository {
	return &TeamAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *TeamAdapter) Create(ctx context.Context, member *entities.TeamMember) error {
	query, args, err := a.db.Insert("team_members").Rows(goqu.Record{
		"id":                member.ID,
		"name":              member.Name,
		"specialty":         member.Specialty,
		"description":       member.Description,
		"profile_image_url": member.ProfileImageURL,
		"created_at":        member.CreatedAt,
		"updated_at":        member.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create team member", err)
	}
	return nil
}

func (a *TeamAdapter) GetByID(ctx context.Context, id string) (*entities.TeamMember, error) {
	query, args, err := a.db.Select(teamColumns...).
		From("team_members").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	member, err := scanTeamMember(a.client.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, readError(err, "team member", id)
	}
	return member, nil
}

func (a *TeamAdapter) List(ctx context.Context) ([]*entities.TeamMember, error) {
	query, args, err := a.db.Select(teamColumns...).
		From("team_members").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list team members", err)
	}
	defer rows.Close()

	members := make([]*entities.TeamMember, 0)
	for rows.Next() {
		member, err := scanTeamMember(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan team member", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating team members", err)
	}
	return members, nil
}

func (a *TeamAdapter) Update(ctx context.Context, member *entities.TeamMember) error {
	member.UpdatedAt = time.Now()

	query, args, err := a.db.Update("team_members").
		Set(goqu.Record{
			"name":              member.Name,
			"specialty":         member.Specialty,
			"description":       member.Description,
			"profile_image_url": member.ProfileImageURL,
			"updated_at":        member.UpdatedAt,
		}).
		Where(goqu.Ex{"id": member.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update team member", err)
	}
	return expectAffected(result, "team member", member.ID)
}

func (a *TeamAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("team_members").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete team member", err)
	}
	return expectAffected(result, "team member", id)
}

func scanTeamMember(row rowScanner) (*entities.TeamMember, error) {
	member := &entities.TeamMember{}
	err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Specialty,
		&member.Description,
		&member.ProfileImageURL,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}
