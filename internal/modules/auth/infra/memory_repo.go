package infra

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
)

type memAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // id -> account
	byEmail  map[string]string          // email -> id
}

func NewMemAccountRepo() domain.AccountRepo {
	return &memAccountRepo{
		accounts: make(map[string]*domain.Account),
		byEmail:  make(map[string]string),
	}
}

func (r *memAccountRepo) GetByEmail(email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r.accounts[id]
	return &cp, nil
}

func (r *memAccountRepo) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memAccountRepo) UpsertPendingSignup(email string, p domain.PendingSignup) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()

	id, ok := r.byEmail[email]
	if !ok {
		id = uuid.New().String()
		r.accounts[id] = &domain.Account{
			ID:        id,
			Email:     email,
			Role:      domain.RoleStudent,
			CreatedAt: now,
		}
		r.byEmail[email] = id
	}

	a := r.accounts[id]
	a.VerificationCode = p.Code
	a.VerificationExpires = p.Expires
	a.TempName = p.Name
	a.TempPassword = p.Password
	a.TempRole = p.Role
	a.Verified = false
	a.UpdatedAt = now

	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) PromoteSignup(id string, promo domain.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Name = promo.Name
	a.PasswordHash = promo.PasswordHash
	a.Role = promo.Role
	a.Verified = true
	a.VerificationCode = ""
	a.VerificationExpires = time.Time{}
	a.TempName = ""
	a.TempPassword = ""
	a.TempRole = ""
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) SetResetCode(id, code string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.ResetCode = code
	a.ResetExpires = expires
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) UpdatePassword(id, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = newHash
	a.ResetCode = ""
	a.ResetExpires = time.Time{}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) CreateAdmin(email, name, passwordHash string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	now := time.Now().UTC()
	a := &domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.accounts[a.ID] = a
	r.byEmail[email] = a.ID
	cp := *a
	return &cp, nil
}
