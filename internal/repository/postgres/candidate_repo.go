package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
)

type CandidateRepo struct {
	db *sql.DB
}

func NewCandidateRepo(db *sql.DB) *CandidateRepo {
	return &CandidateRepo{db: db}
}

func (r *CandidateRepo) Create(ctx context.Context, c *candidate.Candidate) error {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO candidates (full_name, photo_url, party_id, position_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, c.FullName, c.PhotoURL, c.PartyID, c.OfficeID).Scan(&c.ID)
	if isForeignKeyViolation(err) {
		return election.ErrOfficeNotFound
	}
	return pkgerrors.Wrap(err, "insert candidate")
}

func (r *CandidateRepo) GetByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	c := &candidate.Candidate{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, full_name, photo_url, party_id, position_id
        FROM candidates WHERE id = $1
    `, id).Scan(&c.ID, &c.FullName, &c.PhotoURL, &c.PartyID, &c.OfficeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, candidate.ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select candidate")
	}
	return c, nil
}

// List joins each candidate with its office, optional party and optional
// profile in a single query.
func (r *CandidateRepo) List(ctx context.Context, f candidate.ListFilter) ([]candidate.Detail, error) {
	query := `
        SELECT c.id, c.full_name, c.photo_url, c.party_id, c.position_id,
               p.title, p.election_id,
               pa.id, pa.name, pa.logo_url, pa.description,
               cp.id, cp.plan_body, cp.image_url_1, cp.image_url_2, cp.image_url_3, cp.updated_at
        FROM candidates c
        JOIN positions p ON p.id = c.position_id
        JOIN elections e ON e.id = p.election_id
        LEFT JOIN parties pa ON pa.id = c.party_id
        LEFT JOIN candidate_profiles cp ON cp.candidate_id = c.id
    `
	var (
		conds []string
		args  []any
	)
	if f.ElectionID != "" {
		args = append(args, f.ElectionID)
		conds = append(conds, "p.election_id = $"+strconv.Itoa(len(args)))
	}
	if len(f.ElectionStatuses) > 0 {
		placeholders := make([]string, len(f.ElectionStatuses))
		for i, s := range f.ElectionStatuses {
			args = append(args, string(s))
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		conds = append(conds, "e.status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.full_name ASC, c.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select candidates")
	}
	defer rows.Close()

	res := []candidate.Detail{}
	for rows.Next() {
		var (
			d                           candidate.Detail
			partyID, partyName          sql.NullString
			partyLogo, partyDescription sql.NullString
			profileID, planBody         sql.NullString
			img1, img2, img3            sql.NullString
			profileUpdated              sql.NullTime
		)
		if err := rows.Scan(
			&d.ID, &d.FullName, &d.PhotoURL, &d.PartyID, &d.OfficeID,
			&d.Office.Title, &d.Office.ElectionID,
			&partyID, &partyName, &partyLogo, &partyDescription,
			&profileID, &planBody, &img1, &img2, &img3, &profileUpdated,
		); err != nil {
			return nil, pkgerrors.Wrap(err, "scan candidate")
		}
		if partyID.Valid {
			d.Party = &candidate.Party{
				ID:          partyID.String,
				Name:        partyName.String,
				LogoURL:     nullableString(partyLogo),
				Description: nullableString(partyDescription),
			}
		}
		if profileID.Valid {
			d.Profile = &candidate.Profile{
				ID:          profileID.String,
				CandidateID: d.ID,
				PlanBody:    planBody.String,
				ImageURLs:   collectImages(img1, img2, img3),
				UpdatedAt:   profileUpdated.Time,
			}
		}
		res = append(res, d)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate candidates")
}

// Update leaves the position untouched; a candidate never changes office.
func (r *CandidateRepo) Update(ctx context.Context, id string, input candidate.UpdateInput) error {
	var photo, party sql.NullString
	setPhoto, setParty := input.PhotoURL != nil, input.PartyID != nil
	if setPhoto && *input.PhotoURL != "" {
		photo = sql.NullString{String: *input.PhotoURL, Valid: true}
	}
	if setParty && *input.PartyID != "" {
		party = sql.NullString{String: *input.PartyID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE candidates SET
            full_name = COALESCE($1, full_name),
            photo_url = CASE WHEN $2 THEN $3 ELSE photo_url END,
            party_id = CASE WHEN $4 THEN $5::uuid ELSE party_id END
        WHERE id = $6
    `, input.FullName, setPhoto, photo, setParty, party, id)
	if isForeignKeyViolation(err) {
		return candidate.ErrPartyNotFound
	}
	if err != nil {
		return pkgerrors.Wrap(err, "update candidate")
	}
	return expectRow(res, candidate.ErrNotFound)
}

func (r *CandidateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return pkgerrors.Wrap(err, "delete candidate")
	}
	return expectRow(res, candidate.ErrNotFound)
}

func (r *CandidateRepo) CreateParty(ctx context.Context, p *candidate.Party) error {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO parties (name, logo_url, description)
        VALUES ($1, $2, $3)
        RETURNING id
    `, p.Name, p.LogoURL, p.Description).Scan(&p.ID)
	return pkgerrors.Wrap(err, "insert party")
}

func (r *CandidateRepo) GetParty(ctx context.Context, id string) (*candidate.Party, error) {
	p := &candidate.Party{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, logo_url, description FROM parties WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.LogoURL, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, candidate.ErrPartyNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select party")
	}
	return p, nil
}

func (r *CandidateRepo) ListParties(ctx context.Context) ([]candidate.Party, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, logo_url, description FROM parties ORDER BY name ASC`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select parties")
	}
	defer rows.Close()

	res := []candidate.Party{}
	for rows.Next() {
		var p candidate.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.Description); err != nil {
			return nil, pkgerrors.Wrap(err, "scan party")
		}
		res = append(res, p)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate parties")
}

func (r *CandidateRepo) UpdateParty(ctx context.Context, id string, p candidate.Party) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE parties SET name = $1, logo_url = $2, description = $3 WHERE id = $4
    `, p.Name, p.LogoURL, p.Description, id)
	if err != nil {
		return pkgerrors.Wrap(err, "update party")
	}
	return expectRow(res, candidate.ErrPartyNotFound)
}

func (r *CandidateRepo) DeleteParty(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return pkgerrors.Wrap(err, "delete party")
	}
	return expectRow(res, candidate.ErrPartyNotFound)
}

func (r *CandidateRepo) UpsertProfile(ctx context.Context, p *candidate.Profile) error {
	imgs := make([]sql.NullString, candidate.MaxProfileImages)
	for i := 0; i < len(p.ImageURLs) && i < len(imgs); i++ {
		imgs[i] = sql.NullString{String: p.ImageURLs[i], Valid: p.ImageURLs[i] != ""}
	}
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO candidate_profiles (candidate_id, plan_body, image_url_1, image_url_2, image_url_3, updated_at)
        VALUES ($1, $2, $3, $4, $5, now())
        ON CONFLICT (candidate_id) DO UPDATE SET
            plan_body = EXCLUDED.plan_body,
            image_url_1 = EXCLUDED.image_url_1,
            image_url_2 = EXCLUDED.image_url_2,
            image_url_3 = EXCLUDED.image_url_3,
            updated_at = now()
        RETURNING id, updated_at
    `, p.CandidateID, p.PlanBody, imgs[0], imgs[1], imgs[2]).Scan(&p.ID, &p.UpdatedAt)
	if isForeignKeyViolation(err) {
		return candidate.ErrNotFound
	}
	return pkgerrors.Wrap(err, "upsert candidate profile")
}

func (r *CandidateRepo) GetProfile(ctx context.Context, candidateID string) (*candidate.Profile, error) {
	var (
		p                = &candidate.Profile{CandidateID: candidateID}
		img1, img2, img3 sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
        SELECT id, plan_body, image_url_1, image_url_2, image_url_3, updated_at
        FROM candidate_profiles WHERE candidate_id = $1
    `, candidateID).Scan(&p.ID, &p.PlanBody, &img1, &img2, &img3, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, candidate.ErrProfileNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select candidate profile")
	}
	p.ImageURLs = collectImages(img1, img2, img3)
	return p, nil
}

func (r *CandidateRepo) CandidateRows(ctx context.Context) ([]tally.CandidateRow, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT c.id, c.full_name, p.id, p.title, p.election_id
        FROM candidates c
        JOIN positions p ON p.id = c.position_id
        ORDER BY c.full_name ASC, c.id ASC
    `)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select candidate rows")
	}
	defer rows.Close()

	res := []tally.CandidateRow{}
	for rows.Next() {
		var c tally.CandidateRow
		if err := rows.Scan(&c.ID, &c.FullName, &c.Office.ID, &c.Office.Title, &c.Office.ElectionID); err != nil {
			return nil, pkgerrors.Wrap(err, "scan candidate row")
		}
		res = append(res, c)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate candidate rows")
}

func (r *CandidateRepo) CandidateIDsByOffice(ctx context.Context, electionID string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT c.position_id, c.id
        FROM candidates c
        JOIN positions p ON p.id = c.position_id
        WHERE p.election_id = $1
        ORDER BY c.full_name ASC, c.id ASC
    `, electionID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select candidate slate")
	}
	defer rows.Close()

	res := make(map[string][]string)
	for rows.Next() {
		var officeID, id string
		if err := rows.Scan(&officeID, &id); err != nil {
			return nil, pkgerrors.Wrap(err, "scan candidate slate")
		}
		res[officeID] = append(res[officeID], id)
	}
	return res, pkgerrors.Wrap(rows.Err(), "iterate candidate slate")
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func collectImages(imgs ...sql.NullString) []string {
	res := []string{}
	for _, img := range imgs {
		if img.Valid && img.String != "" {
			res = append(res, img.String)
		}
	}
	return res
}
