package store

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/skillsenselab/authservice/internal/auth"
	"github.com/skillsenselab/authservice/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{DSN: ":memory:"}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func seedUser(t *testing.T, s *Store, email, role string) *User {
	t.Helper()
	user := &User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhash",
		Role:         role,
	}
	if err := s.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return user
}

func TestFindCredentialNormalizesEmail(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "Mixed.Case@Example.COM", "MANAGER")

	cred, err := s.Users().FindCredential(context.Background(), "mixed.case@example.com")
	if err != nil {
		t.Fatalf("FindCredential failed: %v", err)
	}
	if cred.Email != "mixed.case@example.com" {
		t.Errorf("stored email = %q, want canonical lower case", cred.Email)
	}
	if cred.Role != "MANAGER" {
		t.Errorf("role = %q, want MANAGER", cred.Role)
	}

	// A differently-cased lookup finds the same record.
	if _, err := s.Users().FindCredential(context.Background(), "MIXED.CASE@EXAMPLE.COM"); err != nil {
		t.Errorf("upper-case lookup failed: %v", err)
	}
}

func TestFindCredentialUnknownEmail(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Users().FindCredential(context.Background(), "nobody@example.com")
	if !errors.Is(err, auth.ErrCredentialNotFound) {
		t.Errorf("err = %v, want ErrCredentialNotFound", err)
	}
}

func TestSoftDeletedUserDoesNotAuthenticate(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, "gone@example.com", "MANAGER")

	if err := s.Users().Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := s.Users().FindCredential(context.Background(), "gone@example.com")
	if !errors.Is(err, auth.ErrCredentialNotFound) {
		t.Errorf("err = %v, want ErrCredentialNotFound after soft delete", err)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "dup@example.com", "MANAGER")

	err := s.Users().Create(context.Background(), &User{
		FirstName:    "Other",
		Email:        "DUP@example.com",
		PasswordHash: "hash",
		Role:         "ADMINISTRATOR",
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("err = %v, want ErrDuplicatedKey", err)
	}
}

func TestListPaginationAndSearch(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "alice@example.com", "MANAGER")
	seedUser(t, s, "bob@example.com", "MANAGER")
	seedUser(t, s, "carol@other.org", "ADMINISTRATOR")

	users, total, err := s.Users().List(context.Background(), 1, 2, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("page size = %d, want 2", len(users))
	}

	users, total, err = s.Users().List(context.Background(), 1, 20, "example.com")
	if err != nil {
		t.Fatalf("List with search failed: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("search got total=%d len=%d, want 2/2", total, len(users))
	}
}

func TestProfileUpsert(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, "mgr@example.com", "MANAGER")

	profile := &ManagerProfile{UserID: user.ID, Department: "Sales", Region: "EMEA"}
	if err := s.Profiles().UpsertManager(context.Background(), profile); err != nil {
		t.Fatalf("UpsertManager (create) failed: %v", err)
	}

	profile.Department = "Marketing"
	if err := s.Profiles().UpsertManager(context.Background(), profile); err != nil {
		t.Fatalf("UpsertManager (update) failed: %v", err)
	}

	got, err := s.Profiles().ManagerByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ManagerByUser failed: %v", err)
	}
	if got.Department != "Marketing" || got.Region != "EMEA" {
		t.Errorf("profile = %+v, want updated department", got)
	}
}
