package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

type ElectionRepo struct {
	db *sql.DB
}

func NewElectionRepo(db *sql.DB) *ElectionRepo {
	return &ElectionRepo{db: db}
}

const electionColumns = `id, title, start_date, end_date, status, created_at`

func scanElection(row interface{ Scan(...any) error }, e *election.Election) error {
	return row.Scan(&e.ID, &e.Title, &e.StartDate, &e.EndDate, &e.Status, &e.CreatedAt)
}

func (r *ElectionRepo) Create(ctx context.Context, e *election.Election) error {
	query := `
        INSERT INTO elections (title, start_date, end_date, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query, e.Title, e.StartDate, e.EndDate, e.Status).
		Scan(&e.ID, &e.CreatedAt)
	return pkgerrors.Wrap(err, "insert election")
}

func (r *ElectionRepo) GetByID(ctx context.Context, id string) (*election.Election, error) {
	e := &election.Election{}
	err := scanElection(r.db.QueryRowContext(ctx,
		`SELECT `+electionColumns+` FROM elections WHERE id = $1`, id), e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, election.ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select election")
	}
	return e, nil
}

func (r *ElectionRepo) List(ctx context.Context, f election.ListFilter) ([]election.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections`
	var args []any
	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			args = append(args, string(s))
			placeholders[i] = "$" + strconv.Itoa(i+1)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	if f.ByStart {
		query += ` ORDER BY start_date ASC`
	} else {
		query += ` ORDER BY created_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select elections")
	}
	defer rows.Close()

	res := []election.Election{}
	for rows.Next() {
		var e election.Election
		if err := scanElection(rows, &e); err != nil {
			return nil, pkgerrors.Wrap(err, "scan election")
		}
		res = append(res, e)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate elections")
}

func (r *ElectionRepo) Update(ctx context.Context, id string, input election.UpdateInput) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE elections SET
            title = COALESCE($1, title),
            start_date = COALESCE($2, start_date),
            end_date = COALESCE($3, end_date),
            status = COALESCE($4, status)
        WHERE id = $5
    `, input.Title, input.StartDate, input.EndDate, statusArg(input.Status), id)
	if err != nil {
		return pkgerrors.Wrap(err, "update election")
	}
	return expectRow(res, election.ErrNotFound)
}

func (r *ElectionRepo) UpdateStatus(ctx context.Context, id string, status election.Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE elections SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return pkgerrors.Wrap(err, "update election status")
	}
	return expectRow(res, election.ErrNotFound)
}

func (r *ElectionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM elections WHERE id = $1`, id)
	if err != nil {
		return pkgerrors.Wrap(err, "delete election")
	}
	return expectRow(res, election.ErrNotFound)
}

func (r *ElectionRepo) CreateOffice(ctx context.Context, o *election.Office) error {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO positions (title, election_id)
        VALUES ($1, $2)
        RETURNING id
    `, o.Title, o.ElectionID).Scan(&o.ID)
	if isForeignKeyViolation(err) {
		return election.ErrNotFound
	}
	return pkgerrors.Wrap(err, "insert position")
}

func (r *ElectionRepo) GetOffice(ctx context.Context, id string) (*election.Office, error) {
	o := &election.Office{}
	err := r.db.QueryRowContext(ctx, `SELECT id, title, election_id FROM positions WHERE id = $1`, id).
		Scan(&o.ID, &o.Title, &o.ElectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, election.ErrOfficeNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select position")
	}
	return o, nil
}

func (r *ElectionRepo) ListOffices(ctx context.Context, electionID string) ([]election.Office, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, election_id
        FROM positions WHERE election_id = $1
        ORDER BY title ASC, id ASC
    `, electionID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select positions")
	}
	defer rows.Close()

	res := []election.Office{}
	for rows.Next() {
		var o election.Office
		if err := rows.Scan(&o.ID, &o.Title, &o.ElectionID); err != nil {
			return nil, pkgerrors.Wrap(err, "scan position")
		}
		res = append(res, o)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate positions")
}

func (r *ElectionRepo) UpdateOffice(ctx context.Context, id, title string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE positions SET title = $1 WHERE id = $2`, title, id)
	if err != nil {
		return pkgerrors.Wrap(err, "update position")
	}
	return expectRow(res, election.ErrOfficeNotFound)
}

func (r *ElectionRepo) DeleteOffice(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return pkgerrors.Wrap(err, "delete position")
	}
	return expectRow(res, election.ErrOfficeNotFound)
}

func statusArg(s *election.Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
