package infra

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/contact/domain"
)

type memContactRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.Contact
}

func NewMemContactRepo() domain.ContactRepo {
	return &memContactRepo{byEmail: make(map[string]*domain.Contact)}
}

func (r *memContactRepo) Get(email string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.Tags = append([]string(nil), c.Tags...)
	return &cp, nil
}

func (r *memContactRepo) Upsert(email string, f domain.UpsertFields) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()

	c, ok := r.byEmail[email]
	if !ok {
		c = &domain.Contact{ID: uuid.New().String(), Email: email, CreatedAt: now}
		r.byEmail[email] = c
	}
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Message != nil {
		c.Message = *f.Message
	}
	for _, t := range f.Tags {
		if !contains(c.Tags, t) {
			c.Tags = append(c.Tags, t)
		}
	}
	c.UpdatedAt = now

	cp := *c
	cp.Tags = append([]string(nil), c.Tags...)
	return &cp, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
