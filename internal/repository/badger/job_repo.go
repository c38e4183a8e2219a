package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"young-ats/internal/domain"
)

type jobRepo struct {
	db *badger.DB
}

func NewJobRepository(db *badger.DB) domain.JobRepository {
	return &jobRepo{db: db}
}

func jobKey(id string) string { return jobPrefix + id }

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, jobKey(job.ID), job)
	})
	return mapTxnErr(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, jobKey(id), &job)
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		jobs, err = scanPrefix[domain.Job](txn, jobPrefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID < jobs[j].ID
	})
	return jobs, nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		var job domain.Job
		if err := getJSON(txn, jobKey(id), &job); err != nil {
			return err
		}
		job.Status = status
		return setJSON(txn, jobKey(id), &job)
	})
	return mapTxnErr(err)
}
