package badger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"young-ats/internal/domain"
)

type sessionRepo struct {
	db  *badger.DB
	now func() time.Time
}

// NewSessionRepository keeps sessions next to the documents when Redis is not
// configured. Entries expire through badger's TTL.
func NewSessionRepository(db *badger.DB) domain.SessionRepository {
	return &sessionRepo{db: db, now: time.Now}
}

func sessionKey(id string) string { return domain.SessionKeyPrefix + ":" + id }

func (r *sessionRepo) Save(ctx context.Context, s *domain.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.db.Update(func(txn *badger.Txn) error {
		raw, err := json.Marshal(s)
		if err != nil {
			return err
		}
		return txn.SetEntry(badger.NewEntry([]byte(sessionKey(s.ID)), raw).WithTTL(ttl))
	})
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, sessionKey(id), &s)
	})
	if err != nil {
		return nil, err
	}
	if !s.ExpiresAt.After(r.now()) {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

// Delete is idempotent: signing out twice is not an error.
func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(sessionKey(id)))
	})
}
