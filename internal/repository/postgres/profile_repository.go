package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, full_name, is_mentor, is_mentee, location, university,
	current_industry, current_position, current_company, past_positions,
	created_at, updated_at
`

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.FullName, &p.IsMentor, &p.IsMentee, &p.Location, &p.University,
		&p.CurrentIndustry, &p.CurrentPosition, &p.CurrentCompany, &p.PastPositions,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetMentorPreferences(ctx context.Context, mentorID string) (*domain.MentorPreferences, error) {
	var prefs domain.MentorPreferences
	query := `
		SELECT mentor_id, help_tags, help_details,
		       pref_location, pref_university, pref_gpa,
		       pref_industry_alignment, pref_help_type, pref_path_alignment
		FROM mentor_preferences WHERE mentor_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, mentorID).Scan(
		&prefs.MentorID, pq.Array(&prefs.HelpTags), &prefs.HelpDetails,
		&prefs.Location, &prefs.University, &prefs.GPA,
		&prefs.IndustryAlignment, &prefs.HelpType, &prefs.PathAlignment,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *profileRepository) GetMenteeNeeds(ctx context.Context, menteeID string) (*domain.MenteeNeeds, error) {
	var needs domain.MenteeNeeds
	query := `
		SELECT mentee_id, gpa, goals, more_info, help_tags
		FROM mentee_needs WHERE mentee_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, menteeID).Scan(
		&needs.MenteeID, &needs.GPA, &needs.Goals, &needs.MoreInfo, pq.Array(&needs.HelpTags),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNeedsNotFound
		}
		return nil, err
	}
	return &needs, nil
}

func (r *profileRepository) listByRole(ctx context.Context, roleColumn string, limit int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + roleColumn + ` ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID, &p.FullName, &p.IsMentor, &p.IsMentee, &p.Location, &p.University,
			&p.CurrentIndustry, &p.CurrentPosition, &p.CurrentCompany, &p.PastPositions,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) ListMenteeCandidates(ctx context.Context, limit int) ([]*domain.Profile, error) {
	return r.listByRole(ctx, "is_mentee = TRUE", limit)
}

func (r *profileRepository) ListMentorCandidates(ctx context.Context, limit int) ([]*domain.Profile, error) {
	return r.listByRole(ctx, "is_mentor = TRUE", limit)
}
