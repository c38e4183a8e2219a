package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"young-ats/internal/domain"
)

type candidateRepo struct {
	db *badger.DB
}

func NewCandidateRepository(db *badger.DB) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func candidateKey(id string) string { return candidatePrefix + id }

// List returns newest candidates first, ties broken by legacyId.
func (r *candidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		candidates, err = scanPrefix[domain.Candidate](txn, candidatePrefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
		}
		return candidates[i].LegacyID < candidates[j].LegacyID
	})
	for i := range candidates {
		candidates[i].EnsureCollections()
	}
	return candidates, nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	var c domain.Candidate
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, candidateKey(id), &c)
	})
	if err != nil {
		return nil, err
	}
	c.EnsureCollections()
	return &c, nil
}

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	if c.LegacyID == "" {
		c.LegacyID = uuid.NewString()
	}
	c.EnsureCollections()

	err := r.db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, candidateKey(c.LegacyID))
		if err != nil {
			return err
		}
		if found {
			return domain.ErrConflict
		}
		return setJSON(txn, candidateKey(c.LegacyID), c)
	})
	return mapTxnErr(err)
}

func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate, precondition *time.Time) error {
	c.EnsureCollections()

	if precondition == nil {
		return r.overwrite(c)
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		var stored domain.Candidate
		if err := getJSON(txn, candidateKey(c.LegacyID), &stored); err != nil {
			return err
		}
		if stored.UpdatedAt == nil || !stored.UpdatedAt.Equal(*precondition) {
			return domain.ErrConflict
		}
		return setJSON(txn, candidateKey(c.LegacyID), c)
	})
	return mapTxnErr(err)
}

// overwrite is the last-write-wins path. The write transaction reads
// nothing, so concurrent writers never conflict with each other.
func (r *candidateRepo) overwrite(c *domain.Candidate) error {
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := exists(txn, candidateKey(c.LegacyID))
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, candidateKey(c.LegacyID), c)
	})
}

func (r *candidateRepo) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, candidateKey(id))
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		return txn.Delete([]byte(candidateKey(id)))
	})
	return mapTxnErr(err)
}
