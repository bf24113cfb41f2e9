package service

import (
	"fmt"

	"storefront/internal/core/model"
	"storefront/internal/core/repository"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type UserService interface {
	CreateUser(name, email, password string) (*model.User, error)
	AuthenticateUser(email, password string) (*model.User, error)
	GetUser(id string) (*model.User, error)
	// DeleteUser removes the user with the given id; callers may only
	// delete themselves.
	DeleteUser(callerID, id string) (*model.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	adminEmail string
}

// NewUserService builds the credential store service. A signup whose
// email equals adminEmail is created with the admin capability; pass ""
// to disable the bootstrap.
func NewUserService(userRepo repository.UserRepository, bcryptCost int, adminEmail string) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		adminEmail: adminEmail,
	}
}

func (s *userService) CreateUser(name, email, password string) (*model.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s is taken", ErrConflict, email)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := s.adminEmail != "" && email == s.adminEmail
	user := model.NewUser(name, email, hash, admin)
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) AuthenticateUser(email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) GetUser(id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return user, nil
}

func (s *userService) DeleteUser(callerID, id string) (*model.User, error) {
	if callerID != id {
		return nil, fmt.Errorf("%w: users may only delete themselves", ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return nil, err
	}
	return user, nil
}

// hashPassword is the single password-set path; every password mutation
// goes through here so a plaintext never reaches the store.
func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
