package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	memcache "github.com/jefer15/debt-management-back/internal/cache/memory"
	"github.com/jefer15/debt-management-back/internal/domain/repository"
	authctrl "github.com/jefer15/debt-management-back/internal/http/controllers/auth"
	debtctrl "github.com/jefer15/debt-management-back/internal/http/controllers/debt"
	healthctrl "github.com/jefer15/debt-management-back/internal/http/controllers/health"
	"github.com/jefer15/debt-management-back/internal/http/router"
	authsvc "github.com/jefer15/debt-management-back/internal/http/services/auth"
	debtsvc "github.com/jefer15/debt-management-back/internal/http/services/debt"
	jwtx "github.com/jefer15/debt-management-back/internal/jwt"
	"github.com/jefer15/debt-management-back/internal/security/password"
)

// Repos en memoria: suficientes para recorrer el flujo completo por HTTP.

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*repository.User
	nextID  int64
}

func (m *memUsers) Create(_ context.Context, in repository.CreateUserInput) (*repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[in.Email]; ok {
		return nil, repository.ErrConflict
	}
	u := &repository.User{ID: m.nextID, Name: in.Name, Email: in.Email, PasswordHash: in.PasswordHash, CreatedAt: time.Now()}
	m.nextID++
	m.byEmail[in.Email] = u
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) CheckPassword(hash, plain string) bool { return password.Verify(hash, plain) }

type memDebts struct {
	mu     sync.Mutex
	debts  map[int64]*repository.Debt
	nextID int64
}

func (m *memDebts) match(d *repository.Debt, userID int64, f repository.StatusFilter) bool {
	if d.UserID != userID {
		return false
	}
	switch f {
	case repository.StatusCompleted:
		return d.Paid
	case repository.StatusPending:
		return !d.Paid
	}
	return true
}

func (m *memDebts) Insert(_ context.Context, d *repository.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.nextID
	m.nextID++
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.debts[d.ID] = &cp
	return nil
}

func (m *memDebts) FindByOwner(_ context.Context, userID int64, f repository.StatusFilter) ([]repository.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.Debt, 0)
	for _, d := range m.debts {
		if m.match(d, userID, f) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memDebts) FindByID(_ context.Context, id, userID int64) (*repository.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.debts[id]
	if !ok || d.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDebts) Save(_ context.Context, d *repository.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.debts[d.ID]; !ok || cur.UserID != d.UserID {
		return repository.ErrNotFound
	}
	cp := *d
	m.debts[d.ID] = &cp
	return nil
}

func (m *memDebts) Delete(_ context.Context, d *repository.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.debts[d.ID]; !ok || cur.UserID != d.UserID {
		return repository.ErrNotFound
	}
	delete(m.debts, d.ID)
	return nil
}

func (m *memDebts) SumAmount(_ context.Context, userID int64, f repository.StatusFilter) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, d := range m.debts {
		if m.match(d, userID, f) {
			total += d.Amount
		}
	}
	return total, nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	users := &memUsers{byEmail: map[string]*repository.User{}, nextID: 1}
	debts := &memDebts{debts: map[int64]*repository.Debt{}, nextID: 1}
	issuer := jwtx.NewIssuer("router-test-secret", "debtsvc-test", time.Hour)
	c := memcache.New(time.Minute)

	register := authsvc.NewRegisterService(authsvc.RegisterDeps{Users: users})
	login := authsvc.NewLoginService(authsvc.LoginDeps{Users: users, Issuer: issuer})
	debtService := debtsvc.NewService(debtsvc.Deps{Repo: debts, Cache: c})

	return router.New(router.Deps{
		Auth:   authctrl.NewController(register, login),
		Debt:   debtctrl.NewController(debtService),
		Health: healthctrl.NewController(nil),
		Issuer: issuer,
	}, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFullDebtLifecycle(t *testing.T) {
	h := newTestHandler(t)

	// registro
	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"message":"User created successfully"}`, rec.Body.String())

	// registro duplicado
	rec = doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// login
	rec = doJSON(t, h, http.MethodPost, "/auth", "", map[string]any{
		"email": "ana@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var loginRes struct {
		Token string `json:"token"`
		Email string `json:"email"`
		User  string `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginRes))
	require.NotEmpty(t, loginRes.Token)
	require.Equal(t, "ana@example.com", loginRes.Email)
	require.Equal(t, "Ana", loginRes.User)
	token := loginRes.Token

	// sin token, 401
	rec = doJSON(t, h, http.MethodGet, "/debt", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// crear deuda
	rec = doJSON(t, h, http.MethodPost, "/debt", token, map[string]any{
		"description": "tarjeta", "amount": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created repository.Debt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.False(t, created.Paid)

	// monto inválido
	rec = doJSON(t, h, http.MethodPost, "/debt", token, map[string]any{
		"description": "x", "amount": -1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "El valor de la deuda debe ser mayor a 0")

	// resumen inicial
	rec = doJSON(t, h, http.MethodGet, "/debt/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"total":100,"paid":0,"pending":100}`, rec.Body.String())

	// pagar
	rec = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/debt/%d/pay", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// pagar de nuevo
	rec = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/debt/%d/pay", created.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Ya está pagada")

	// modificar pagada
	rec = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/debt/%d", created.ID), token, map[string]any{
		"amount": 50.0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "No se puede modificar una deuda pagada")

	// resumen tras el pago (la invalidación debe reflejarlo de inmediato)
	rec = doJSON(t, h, http.MethodGet, "/debt/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"total":100,"paid":100,"pending":0}`, rec.Body.String())

	// exportar csv envuelto en JSON
	rec = doJSON(t, h, http.MethodGet, "/debt/export/csv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var csvRes struct {
		CSV string `json:"csv"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &csvRes))
	require.Contains(t, csvRes.CSV, "id,description,amount,paid,createdAt")
	require.Contains(t, csvRes.CSV, "tarjeta")

	// borrar
	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/debt/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// borrada no se encuentra
	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/debt/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Deuda no encontrada")
}

func TestLoginErrors(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "s3cret",
	})

	rec := doJSON(t, h, http.MethodPost, "/auth", "", map[string]any{
		"email": "nadie@example.com", "password": "x",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email")

	rec = doJSON(t, h, http.MethodPost, "/auth", "", map[string]any{
		"email": "ana@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid password")
}

func registerAndLogin(t *testing.T, h http.Handler, name, email string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/auth", "", map[string]any{
		"email": email, "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.Token
}

func TestUsersCannotTouchForeignDebts(t *testing.T) {
	h := newTestHandler(t)

	tokenA := registerAndLogin(t, h, "Ana", "ana@example.com")
	tokenB := registerAndLogin(t, h, "Beto", "beto@example.com")

	rec := doJSON(t, h, http.MethodPost, "/debt", tokenA, map[string]any{
		"description": "de ana", "amount": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created repository.Debt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// B no puede ver, editar, pagar ni borrar la deuda de A
	path := fmt.Sprintf("/debt/%d", created.ID)
	for _, req := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, path, nil},
		{http.MethodPatch, path, map[string]any{"amount": 1.0}},
		{http.MethodPatch, path + "/pay", nil},
		{http.MethodDelete, path, nil},
	} {
		rec := doJSON(t, h, req.method, req.path, tokenB, req.body)
		require.Equalf(t, http.StatusNotFound, rec.Code, "%s %s: %s", req.method, req.path, rec.Body.String())
	}

	// y sus listados no la incluyen
	rec = doJSON(t, h, http.MethodGet, "/debt", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	// la deuda de A sigue intacta
	rec = doJSON(t, h, http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthProbes(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
