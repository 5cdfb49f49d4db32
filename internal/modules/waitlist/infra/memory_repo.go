package infra

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/domain"
)

type memWaitlistRepo struct {
	mu      sync.RWMutex
	entries []domain.Entry
	byEmail map[string]struct{}
}

func NewMemWaitlistRepo() domain.WaitlistRepo {
	return &memWaitlistRepo{byEmail: make(map[string]struct{})}
}

func (r *memWaitlistRepo) Add(email string) (*domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrDuplicate
	}
	e := domain.Entry{ID: uuid.New().String(), Email: email, CreatedAt: time.Now().UTC()}
	r.entries = append(r.entries, e)
	r.byEmail[email] = struct{}{}
	return &e, nil
}

func (r *memWaitlistRepo) Emails() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Email)
	}
	return out, nil
}
