package postgres

import (
	"context"
	"database/sql"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/DiegxRG/E-Vote/internal/domain/voter"
)

type VoterRepo struct {
	db *sql.DB
}

func NewVoterRepo(db *sql.DB) *VoterRepo {
	return &VoterRepo{db: db}
}

const profileColumns = `id, email, password_hash, full_name, dni, role, created_at`

func scanProfile(row interface{ Scan(...any) error }, p *voter.Profile) error {
	return row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.NationalID, &p.Role, &p.CreatedAt)
}

func (r *VoterRepo) Create(ctx context.Context, p *voter.Profile) error {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO profiles (email, password_hash, full_name, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, p.Email, p.PasswordHash, p.FullName, p.Role).Scan(&p.ID, &p.CreatedAt)
	if isUniqueViolation(err) {
		return voter.ErrEmailTaken
	}
	return pkgerrors.Wrap(err, "insert profile")
}

func (r *VoterRepo) GetByEmail(ctx context.Context, email string) (*voter.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
}

func (r *VoterRepo) GetByID(ctx context.Context, id string) (*voter.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *VoterRepo) getOne(ctx context.Context, query string, arg any) (*voter.Profile, error) {
	p := &voter.Profile{}
	err := scanProfile(r.db.QueryRowContext(ctx, query, arg), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, voter.ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select profile")
	}
	return p, nil
}

func (r *VoterRepo) List(ctx context.Context) ([]voter.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select profiles")
	}
	defer rows.Close()

	res := []voter.Profile{}
	for rows.Next() {
		var p voter.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "scan profile")
		}
		res = append(res, p)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate profiles")
}

func (r *VoterRepo) UpdateRole(ctx context.Context, id, role string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return pkgerrors.Wrap(err, "update profile role")
	}
	return expectRow(res, voter.ErrNotFound)
}

func (r *VoterRepo) UpdateIdentity(ctx context.Context, id, nationalID, fullName string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE profiles SET dni = $1, full_name = $2 WHERE id = $3
    `, nationalID, fullName, id)
	if isUniqueViolation(err) {
		return voter.ErrNationalIDTaken
	}
	if err != nil {
		return pkgerrors.Wrap(err, "update profile identity")
	}
	return expectRow(res, voter.ErrNotFound)
}
