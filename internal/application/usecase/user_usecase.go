package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

// UserUseCase administración de usuarios (roles) y perfil propio.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log.Named("users")}
}

// List devuelve una página de usuarios.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]*dto.UserResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, u := range list {
		out.Items = append(out.Items, dto.NewUserResponse(u))
	}
	return out, nil
}

// AvailableRoles roles que el actor puede asignar a otros usuarios.
func (uc *UserUseCase) AvailableRoles(actor entity.Role) *dto.AvailableRolesResponse {
	roles := access.AvailableRolesFor(actor)
	out := &dto.AvailableRolesResponse{Roles: make([]string, 0, len(roles))}
	for _, r := range roles {
		out.Roles = append(out.Roles, string(r))
	}
	return out
}

// ChangeRole reasigna el rol de targetID. El actor debe poder cambiar el rol actual del
// usuario y el nuevo rol debe estar entre los que puede asignar; si no, domain.ErrForbidden.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actor *entity.Session, targetID, newRole string) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(strings.ToUpper(strings.TrimSpace(newRole)))
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	target, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if !access.CanAssign(actor.Role, target.Role, role) {
		uc.log.Warn().
			Str("actor_id", actor.UserID).Str("actor_role", string(actor.Role)).
			Str("target_id", targetID).Str("target_role", string(target.Role)).
			Str("requested", string(role)).
			Msg("cambio de rol denegado")
		return nil, domain.ErrForbidden
	}
	updated, err := uc.repo.UpdateFields(ctx, targetID, entity.UserPatch{Role: &role})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("actor_id", actor.UserID).Str("target_id", targetID).
		Str("from", string(target.Role)).Str("to", string(role)).
		Msg("rol actualizado")
	return dto.NewUserResponse(updated), nil
}

// GetProfile perfil del usuario autenticado.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile actualiza campos del perfil propio. Rol y tipo de negocio no se tocan desde aquí.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	patch := entity.UserPatch{
		Phone:            in.Phone,
		ImageURL:         in.ImageURL,
		TwoFactorEnabled: in.TwoFactorEnabled,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		patch.Name = &name
	}
	if patch.IsEmpty() {
		return uc.GetProfile(ctx, userID)
	}
	updated, err := uc.repo.UpdateFields(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(updated), nil
}
