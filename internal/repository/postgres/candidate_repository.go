package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"young-ats/internal/domain"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT doc FROM candidates ORDER BY created_at DESC, legacy_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c, err := decodeCandidate(raw)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT doc FROM candidates WHERE legacy_id = $1`

	var raw []byte
	if err := r.db.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return decodeCandidate(raw)
}

// Create assigns a legacyId when the caller left it empty. An id that is
// already taken is reported as ErrConflict.
func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	if c.LegacyID == "" {
		c.LegacyID = uuid.NewString()
	}
	c.EnsureCollections()

	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode candidate: %w", err)
	}

	query := `INSERT INTO candidates (legacy_id, doc, pipeline_stage, created_at, updated_at)
              VALUES ($1, $2::jsonb, $3, $4, $5)
              ON CONFLICT (legacy_id) DO NOTHING`

	// JSON goes over as text: the simple protocol would send []byte as bytea
	tag, err := r.db.Exec(ctx, query, c.LegacyID, string(doc), string(c.PipelineStage), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate, precondition *time.Time) error {
	c.EnsureCollections()

	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode candidate: %w", err)
	}

	query := `UPDATE candidates
              SET doc = $2::jsonb, pipeline_stage = $3, updated_at = $4
              WHERE legacy_id = $1
                AND ($5::timestamptz IS NULL OR updated_at IS NOT DISTINCT FROM $5::timestamptz)`

	tag, err := r.db.Exec(ctx, query, c.LegacyID, string(doc), string(c.PipelineStage), c.UpdatedAt, precondition)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if precondition == nil {
		return domain.ErrNotFound
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE legacy_id = $1)`, c.LegacyID).Scan(&exists); err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrNotFound
}

func (r *candidateRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE legacy_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func decodeCandidate(raw []byte) (*domain.Candidate, error) {
	var c domain.Candidate
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	c.EnsureCollections()
	return &c, nil
}
