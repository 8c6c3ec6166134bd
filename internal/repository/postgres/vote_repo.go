package postgres

import (
	"context"
	"database/sql"

	pkgerrors "github.com/pkg/errors"

	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// InsertBatch writes the whole ballot in one transaction. Any duplicate
// (user, position) pair rolls everything back.
func (r *VoteRepo) InsertBatch(ctx context.Context, votes []ballot.Vote) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "begin ballot tx")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO votes (user_id, election_id, position_id, candidate_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `)
	if err != nil {
		return pkgerrors.Wrap(err, "prepare vote insert")
	}
	defer stmt.Close()

	for i := range votes {
		v := &votes[i]
		if err = stmt.QueryRowContext(ctx, v.UserID, v.ElectionID, v.OfficeID, v.CandidateID).
			Scan(&v.ID, &v.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return ballot.ErrAlreadyVoted
			}
			return pkgerrors.Wrap(err, "insert vote")
		}
	}

	if err = tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, "commit ballot tx")
	}
	return nil
}

func (r *VoteRepo) VoteRows(ctx context.Context) ([]tally.VoteRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, election_id, position_id, candidate_id FROM votes`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select votes")
	}
	defer rows.Close()

	res := []tally.VoteRow{}
	for rows.Next() {
		var v tally.VoteRow
		if err := rows.Scan(&v.ID, &v.ElectionID, &v.OfficeID, &v.CandidateID); err != nil {
			return nil, pkgerrors.Wrap(err, "scan vote")
		}
		res = append(res, v)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate votes")
}
