package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/infrastructure/memory"
	"github.com/jhoicas/donepaid-api/pkg/jwt"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

const testSecret = "secreto-de-pruebas"

// ────────────────────────────────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────────────────────────────────

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *userRepoMock) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *userRepoMock) UpdateFields(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, id, p)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *userRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	args := m.Called(ctx, limit, offset)
	l, _ := args.Get(0).([]*entity.User)
	return l, args.Int(1), args.Error(2)
}

type brokenStore struct{}

func (brokenStore) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis caído")
}
func (brokenStore) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis caído")
}

func newAuth(repo *userRepoMock) *AuthUseCase {
	return NewAuthUseCase(repo, memory.NewSessionStore(), JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, logger.Nop())
}

func userWithPassword(t *testing.T, pw string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash), Role: entity.RoleManager}
}

func tokenFor(t *testing.T, sub jwt.Subject) string {
	t.Helper()
	tok, _, err := jwt.Generate(testSecret, "test", sub, 60)
	require.NoError(t, err)
	return tok
}

// ────────────────────────────────────────────────────────────────────────────
// Registro y login
// ────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_RolUserSinTipoDeNegocio(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser && u.BusinessType == nil && u.PasswordHash != "supersecreta"
	})).Return(nil)

	out, err := newAuth(repo).RegisterUser(context.Background(), dto.RegisterRequest{Email: " Ana@Example.com ", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, "USER", out.Role)
	assert.Nil(t, out.BusinessType)
	repo.AssertExpectations(t)
}

func TestRegisterUser_Errores(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&entity.User{ID: "x"}, nil)
	uc := newAuth(repo)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(userWithPassword(t, "supersecreta"), nil)
	repo.On("GetByEmail", mock.Anything, "nadie@example.com").Return(nil, nil)
	repo.On("GetByID", mock.Anything, "u1").Return(userWithPassword(t, "supersecreta"), nil)
	uc := newAuth(repo)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	sess, err := uc.ParseSession(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, sess.Role)
	assert.Nil(t, sess.BusinessType)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ────────────────────────────────────────────────────────────────────────────
// ParseSession: la sesión se valida una sola vez y falla cerrada
// ────────────────────────────────────────────────────────────────────────────

func TestParseSession_ClaimsFueraDelEnumerado(t *testing.T) {
	uc := newAuth(new(userRepoMock))
	ctx := context.Background()

	cases := []struct {
		name string
		sub  jwt.Subject
	}{
		{"rol desconocido", jwt.Subject{UserID: "u1", Role: "ROOT"}},
		{"rol en minúsculas", jwt.Subject{UserID: "u1", Role: "admin"}},
		{"sin rol", jwt.Subject{UserID: "u1"}},
		{"tipo desconocido", jwt.Subject{UserID: "u1", Role: "USER", BusinessType: "FARMING"}},
		{"sin usuario", jwt.Subject{Role: "USER"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ParseSession(ctx, tokenFor(t, tc.sub))
			assert.True(t, IsInvalidSession(err))
		})
	}

	_, err := uc.ParseSession(ctx, "no-es-un-token")
	assert.True(t, IsInvalidSession(err))
}

func TestParseSession_TipoDeNegocio(t *testing.T) {
	retail := entity.BusinessRetail
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Role: entity.RoleUser, BusinessType: &retail}, nil)
	uc := newAuth(repo)

	sess, err := uc.ParseSession(context.Background(), tokenFor(t, jwt.Subject{UserID: "u1", Role: "USER", BusinessType: "RETAIL"}))
	require.NoError(t, err)
	require.NotNil(t, sess.BusinessType)
	assert.Equal(t, entity.BusinessRetail, *sess.BusinessType)
	assert.True(t, sess.Classified())

	// token emitido antes del onboarding: la DB ya está clasificada
	sess, err = uc.ParseSession(context.Background(), tokenFor(t, jwt.Subject{UserID: "u1", Role: "USER"}))
	require.NoError(t, err)
	assert.True(t, sess.Classified())
}

func TestParseSession_RolPersistidoPrevaleceSobreElToken(t *testing.T) {
	retail := entity.BusinessRetail
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Email: "ana@example.com", Role: entity.RoleBanned, BusinessType: &retail}, nil)
	uc := newAuth(repo)

	// token emitido como MANAGER antes del bloqueo
	tok := tokenFor(t, jwt.Subject{UserID: "u1", Email: "ana@example.com", Role: "MANAGER", BusinessType: "RETAIL"})
	sess, err := uc.ParseSession(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBanned, sess.Role)
	assert.False(t, access.CanAccessRoute(sess.Role, string(access.RouteInvoices)))
	assert.True(t, access.CanAccessRoute(sess.Role, string(access.RouteBanned)))
}

func TestParseSession_UsuarioBorradoOFalloDeDB(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "borrado").Return(nil, nil)
	repo.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("db caída"))
	uc := newAuth(repo)
	ctx := context.Background()

	_, err := uc.ParseSession(ctx, tokenFor(t, jwt.Subject{UserID: "borrado", Role: "USER"}))
	assert.True(t, IsInvalidSession(err))

	_, err = uc.ParseSession(ctx, tokenFor(t, jwt.Subject{UserID: "u1", Role: "USER"}))
	assert.True(t, IsInvalidSession(err))
}

func TestParseSession_AlmacenCaidoRechaza(t *testing.T) {
	uc := NewAuthUseCase(new(userRepoMock), brokenStore{}, JWTConfig{Secret: testSecret, ExpMinutes: 60}, logger.Nop())
	_, err := uc.ParseSession(context.Background(), tokenFor(t, jwt.Subject{UserID: "u1", Role: "USER"}))
	assert.True(t, IsInvalidSession(err))
}

// ────────────────────────────────────────────────────────────────────────────
// Refresh / Logout
// ────────────────────────────────────────────────────────────────────────────

func TestRefresh_LeeElUsuarioYRevocaLaAnterior(t *testing.T) {
	bt := entity.BusinessService
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Email: "ana@example.com", Role: entity.RoleAdmin, BusinessType: &bt}, nil)
	uc := newAuth(repo)
	ctx := context.Background()

	old := tokenFor(t, jwt.Subject{UserID: "u1", Role: "USER"})
	sess, err := uc.ParseSession(ctx, old)
	require.NoError(t, err)

	out, err := uc.Refresh(ctx, sess)
	require.NoError(t, err)

	fresh, err := uc.ParseSession(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, fresh.Role, "el rol proviene del registro persistido")
	require.NotNil(t, fresh.BusinessType)
	assert.Equal(t, entity.BusinessService, *fresh.BusinessType)

	_, err = uc.ParseSession(ctx, old)
	assert.True(t, IsInvalidSession(err), "la sesión anterior queda revocada")
}

func TestLogout(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Role: entity.RoleUser}, nil)
	uc := newAuth(repo)
	ctx := context.Background()
	tok := tokenFor(t, jwt.Subject{UserID: "u1", Role: "USER"})
	sess, err := uc.ParseSession(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, sess))
	_, err = uc.ParseSession(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
