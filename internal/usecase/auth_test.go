package usecase

import (
	"context"
	"fmt"
	"testing"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	pkgAuth "github.com/darkbyte-host/storefront/internal/pkg/auth"
	testhelpers "github.com/darkbyte-host/storefront/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(claims pkgAuth.Claims) (string, error) {
			admin := 0
			if claims.Admin {
				admin = 1
			}
			return fmt.Sprintf("token-%d-%d", claims.UserID, admin), nil
		},
		ParseFn: func(token string) (pkgAuth.Claims, error) {
			var id int64
			var admin int
			if _, err := fmt.Sscanf(token, "token-%d-%d", &id, &admin); err != nil {
				return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
			}
			return pkgAuth.Claims{UserID: id, Admin: admin == 1}, nil
		},
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, " Alice@Example.COM ", "Alice", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if token != "token-1-0" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "bob@example.com", "Bob", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "bob@example.com", "Bob", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "carol@example.com", "Carol", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "nobody@example.com", "123456"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "Carol@Example.com", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1-0" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAdminClaims(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "root@example.com", "Root", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.Users["root@example.com"].IsAdmin = true

	_, token, err := uc.Authenticate(ctx, "root@example.com", "secret")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1-1" {
		t.Fatalf("expected admin token, got %q", token)
	}

	claims, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if !claims.Admin || claims.UserID != 1 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	claims, err := uc.ParseToken("token-42-0")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != 42 || claims.Admin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	cases := []struct {
		email, name, password string
	}{
		{"", "Alice", "password"},
		{"not-an-email", "Alice", "password"},
		{"a@b", "Alice", "password"},
		{"alice@example.com", "", "password"},
		{"alice@example.com", "Alice", ""},
	}
	for _, c := range cases {
		if _, _, err := uc.Register(context.Background(), c.email, c.name, c.password); err != domainErrors.ErrInvalidCredentials {
			t.Fatalf("expected invalid credentials for %+v, got %v", c, err)
		}
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "dave@example.com", "Dave", "secret"); err == nil {
		t.Fatal("expected hasher error")
	}
}

func TestAuthUseCaseGetByID(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, _, err := uc.Register(ctx, "erin@example.com", "Erin", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := uc.GetByID(ctx, user.ID)
	if err != nil || got.Email != "erin@example.com" {
		t.Fatalf("unexpected user: %+v err=%v", got, err)
	}
	if _, err := uc.GetByID(ctx, 999); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
