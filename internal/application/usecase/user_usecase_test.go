package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/application/usecase"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

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
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Int(1), args.Error(2)
}

func actor(role entity.Role) *entity.Session {
	return &entity.Session{ID: "s", UserID: "actor", Role: role, ExpiresAt: time.Now().Add(time.Hour)}
}

func rolePatch(r entity.Role) interface{} {
	return mock.MatchedBy(func(p entity.UserPatch) bool { return p.Role != nil && *p.Role == r })
}

func TestChangeRole_AdminPromueveAManager(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "t").Return(&entity.User{ID: "t", Role: entity.RoleUser}, nil)
	repo.On("UpdateFields", mock.Anything, "t", rolePatch(entity.RoleManager)).
		Return(&entity.User{ID: "t", Role: entity.RoleManager}, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	out, err := uc.ChangeRole(context.Background(), actor(entity.RoleAdmin), "t", "manager")
	require.NoError(t, err)
	assert.Equal(t, "MANAGER", out.Role)
	repo.AssertExpectations(t)
}

func TestChangeRole_AdminNoTocaSuperAdmin(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "t").Return(&entity.User{ID: "t", Role: entity.RoleSuperAdmin}, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	_, err := uc.ChangeRole(context.Background(), actor(entity.RoleAdmin), "t", "USER")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeRole_AdminNoAsignaFueraDeSuLista(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "t").Return(&entity.User{ID: "t", Role: entity.RoleUser}, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	for _, r := range []string{"SUPERADMIN", "ADMIN", "BANNED", "PATIENT"} {
		_, err := uc.ChangeRole(context.Background(), actor(entity.RoleAdmin), "t", r)
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s", r)
	}
}

func TestChangeRole_SuperAdminReasignaSuperAdmin(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "t").Return(&entity.User{ID: "t", Role: entity.RoleSuperAdmin}, nil)
	repo.On("UpdateFields", mock.Anything, "t", rolePatch(entity.RoleBanned)).
		Return(&entity.User{ID: "t", Role: entity.RoleBanned}, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	out, err := uc.ChangeRole(context.Background(), actor(entity.RoleSuperAdmin), "t", "BANNED")
	require.NoError(t, err)
	assert.Equal(t, "BANNED", out.Role)
}

func TestChangeRole_UsuarioComunNoCambiaRoles(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "t").Return(&entity.User{ID: "t", Role: entity.RoleUser}, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	_, err := uc.ChangeRole(context.Background(), actor(entity.RoleUser), "t", "USER")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangeRole_RolInvalidoYUsuarioInexistente(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	_, err := uc.ChangeRole(context.Background(), actor(entity.RoleAdmin), "nope", "GOD")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ChangeRole(context.Background(), actor(entity.RoleAdmin), "nope", "USER")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAvailableRoles(t *testing.T) {
	uc := usecase.NewUserUseCase(new(userRepoMock), logger.Nop())
	assert.ElementsMatch(t, []string{"MANAGER", "ACCOUNTANT", "SALESPERSON", "USER"}, uc.AvailableRoles(entity.RoleAdmin).Roles)
	assert.Empty(t, uc.AvailableRoles(entity.RoleAccountant).Roles)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("UpdateFields", mock.Anything, "u", mock.MatchedBy(func(p entity.UserPatch) bool {
		return p.Name != nil && *p.Name == "Ana" && p.Role == nil && p.BusinessType == nil
	})).Return(&entity.User{ID: "u", Name: "Ana"}, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	name := "  Ana "
	out, err := uc.UpdateProfile(context.Background(), "u", dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)

	blank := " "
	_, err = uc.UpdateProfile(context.Background(), "u", dto.UpdateProfileRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_AplicaPaginacionPorDefecto(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("List", mock.Anything, 20, 0).Return([]*entity.User{{ID: "a"}, {ID: "b"}}, 2, nil)
	uc := usecase.NewUserUseCase(repo, logger.Nop())

	out, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Total)
}
