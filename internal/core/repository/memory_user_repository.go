package repository

import (
	"fmt"
	"sync"

	"storefront/internal/core/model"
)

type inMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() UserRepository {
	return &inMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *inMemoryUserRepository) Create(user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("user with ID %s already exists", user.ID)
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
	}

	r.users[user.ID] = user
	return nil
}

func (r *inMemoryUserRepository) Update(user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return fmt.Errorf("user with ID %s not found", user.ID)
	}

	r.users[user.ID] = user
	return nil
}

func (r *inMemoryUserRepository) Delete(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[id]; !exists {
		return fmt.Errorf("user with ID %s not found", id)
	}

	delete(r.users, id)
	return nil
}

func (r *inMemoryUserRepository) FindByID(id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if user, exists := r.users[id]; exists {
		return user, nil
	}
	return nil, nil
}

func (r *inMemoryUserRepository) FindByEmail(email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepository) FindByIDAndToken(id, token string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, nil
	}
	for _, session := range user.Sessions {
		if session.Token == token {
			return user, nil
		}
	}
	return nil, nil
}
