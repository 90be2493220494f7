package handlers_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/loginportal/internal/models"
	"github.com/example/loginportal/internal/store"
)

// memStore is an in-memory store.Users used by the handler tests. It mirrors
// the GORM store's semantics: duplicate rejection, oldest-account-wins name
// lookup, not-found reporting without mutation.
type memStore struct {
	users []*models.User
}

func (m *memStore) FindByEmailOrPhone(email, phone string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email || u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByName(name string) (*models.User, error) {
	// Insertion order is creation order, so the first match is the oldest.
	for _, u := range m.users {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) Create(user *models.User) error {
	if user.ProfileImagePath == "" {
		user.ProfileImagePath = models.DefaultProfileImagePath
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if dup, _ := m.FindByEmailOrPhone(user.Email, user.Phone); dup != nil {
		return store.ErrDuplicate
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	cp := *user
	m.users = append(m.users, &cp)
	return nil
}

func (m *memStore) ListAll() ([]models.User, error) {
	out := make([]models.User, len(m.users))
	for i, u := range m.users {
		out[i] = *u
	}
	return out, nil
}

func (m *memStore) UpdateByID(id uuid.UUID, update store.UserUpdate) error {
	for _, u := range m.users {
		if u.ID != id {
			continue
		}
		if update.Name != "" {
			u.Name = update.Name
		}
		if update.Email != "" {
			u.Email = update.Email
		}
		if update.Phone != "" {
			u.Phone = update.Phone
		}
		if update.Address != "" {
			u.Address = update.Address
		}
		u.UpdatedAt = time.Now()
		return nil
	}
	return store.ErrNotFound
}

func (m *memStore) DeleteByID(id uuid.UUID) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) SetProfileImage(id uuid.UUID, path string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.ProfileImagePath = path
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return store.ErrNotFound
}
