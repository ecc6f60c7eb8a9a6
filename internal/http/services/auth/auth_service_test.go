package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
	dto "github.com/jefer15/debt-management-back/internal/http/dto/auth"
	svc "github.com/jefer15/debt-management-back/internal/http/services/auth"
	jwtx "github.com/jefer15/debt-management-back/internal/jwt"
	"github.com/jefer15/debt-management-back/internal/security/password"
)

// fakeUserRepo es un UserRepository en memoria indexado por email.
type fakeUserRepo struct {
	byEmail map[string]*repository.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*repository.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, in repository.CreateUserInput) (*repository.User, error) {
	if _, ok := f.byEmail[in.Email]; ok {
		return nil, repository.ErrConflict
	}
	u := &repository.User{
		ID:           f.nextID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.byEmail[in.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*repository.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) CheckPassword(hash, plain string) bool {
	return password.Verify(hash, plain)
}

func testIssuer() *jwtx.Issuer {
	return jwtx.NewIssuer("test-secret", "debtsvc-test", time.Hour)
}

func TestRegisterSuccess(t *testing.T) {
	users := newFakeUserRepo()
	reg := svc.NewRegisterService(svc.RegisterDeps{Users: users})

	res, err := reg.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "Ana@Example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Message != "User created successfully" {
		t.Fatalf("Message = %q", res.Message)
	}

	// email normalizado y password hasheado
	u, err := users.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatal("user not stored under normalized email")
	}
	if u.PasswordHash == "s3cret" {
		t.Fatal("password stored in plain text")
	}
	if !password.Verify(u.PasswordHash, "s3cret") {
		t.Fatal("stored hash does not verify")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	reg := svc.NewRegisterService(svc.RegisterDeps{Users: users})

	in := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "x"}
	if _, err := reg.Register(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Register(context.Background(), in); !errors.Is(err, svc.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	reg := svc.NewRegisterService(svc.RegisterDeps{Users: newFakeUserRepo()})
	ctx := context.Background()

	if _, err := reg.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "x"}); !errors.Is(err, svc.ErrMissingFields) {
		t.Fatalf("missing name: err = %v", err)
	}
	if _, err := reg.Register(ctx, dto.RegisterRequest{Name: "A", Email: "not-an-email", Password: "x"}); !errors.Is(err, svc.ErrInvalidEmail) {
		t.Fatalf("bad email: err = %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	login := svc.NewLoginService(svc.LoginDeps{Users: newFakeUserRepo(), Issuer: testIssuer()})

	_, err := login.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	if !errors.Is(err, svc.ErrInvalidEmail) {
		t.Fatalf("err = %v, want ErrInvalidEmail", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	reg := svc.NewRegisterService(svc.RegisterDeps{Users: users})
	login := svc.NewLoginService(svc.LoginDeps{Users: users, Issuer: testIssuer()})
	ctx := context.Background()

	if _, err := reg.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "right"}); err != nil {
		t.Fatal(err)
	}

	_, err := login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	if !errors.Is(err, svc.ErrInvalidPassword) {
		t.Fatalf("err = %v, want ErrInvalidPassword", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	reg := svc.NewRegisterService(svc.RegisterDeps{Users: users})
	issuer := testIssuer()
	login := svc.NewLoginService(svc.LoginDeps{Users: users, Issuer: issuer})
	ctx := context.Background()

	if _, err := reg.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "s3cret"}); err != nil {
		t.Fatal(err)
	}

	res, err := login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Email != "ana@example.com" || res.User != "Ana" {
		t.Fatalf("result = %+v", res)
	}

	claims, err := issuer.Parse(res.Token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != 1 || claims.Email != "ana@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}
