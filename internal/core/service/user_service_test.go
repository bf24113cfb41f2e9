package service

import (
	"errors"
	"testing"

	"storefront/internal/core/repository"

	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPassword(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, "")

	first, err := svc.CreateUser("Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if first.Password == "correct horse" {
		t.Fatal("stored password equals the plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(first.Password), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}

	// Same password, different user: the salt must make the hashes
	// differ while both still verify.
	second, err := svc.CreateUser("Bob", "bob@example.com", "correct horse")
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if second.Password == first.Password {
		t.Error("two hashes of the same password are identical, expected salted hashes")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(second.Password), []byte("correct horse")); err != nil {
		t.Errorf("second hash does not verify against the password: %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, "")

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{name: "missing name", userName: "", email: "a@example.com", password: "long enough", wantErr: ErrValidation},
		{name: "missing email", userName: "A", email: "", password: "long enough", wantErr: ErrValidation},
		{name: "short password", userName: "A", email: "a@example.com", password: "short", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateUser(tt.userName, tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, "")

	if _, err := svc.CreateUser("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if _, err := svc.CreateUser("Other Alice", "alice@example.com", "battery staple"); !errors.Is(err, ErrConflict) {
		t.Errorf("CreateUser() error = %v, want ErrConflict", err)
	}
}

func TestCreateUserAdminBootstrap(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, "admin@example.com")

	admin, err := svc.CreateUser("Root", "admin@example.com", "correct horse")
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("IsAdmin = false for the configured admin email")
	}

	user, err := svc.CreateUser("Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if user.IsAdmin {
		t.Error("IsAdmin = true for a regular signup")
	}
}

func TestAuthenticateUser(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, "")

	created, err := svc.CreateUser("Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	user, err := svc.AuthenticateUser("alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("AuthenticateUser() unexpected error: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("user ID = %q, want %q", user.ID, created.ID)
	}

	if _, err := svc.AuthenticateUser("alice@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("AuthenticateUser() error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.AuthenticateUser("nobody@example.com", "correct horse"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("AuthenticateUser() error = %v, want ErrUnauthorized", err)
	}
}

func TestDeleteUserOwnership(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo, bcrypt.MinCost, "")

	user, err := svc.CreateUser("Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	if _, err := svc.DeleteUser("someone-else", user.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("DeleteUser() error = %v, want ErrUnauthorized", err)
	}

	deleted, err := svc.DeleteUser(user.ID, user.ID)
	if err != nil {
		t.Fatalf("DeleteUser() unexpected error: %v", err)
	}
	if deleted.ID != user.ID {
		t.Errorf("deleted ID = %q, want %q", deleted.ID, user.ID)
	}

	if _, err := svc.DeleteUser(user.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteUser() error = %v, want ErrNotFound", err)
	}
}
