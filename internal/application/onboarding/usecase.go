// Package onboarding aplica el flujo de clasificación del negocio sobre el registro
// persistido del usuario y combina esa decisión con la política de acceso por ruta.
package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	flow "github.com/jhoicas/donepaid-api/internal/domain/onboarding"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

// OnboardingUseCase lectura y escritura del tipo de negocio del usuario.
type OnboardingUseCase struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewOnboardingUseCase construye el caso de uso.
func NewOnboardingUseCase(users repository.UserRepository, log *logger.Logger) *OnboardingUseCase {
	return &OnboardingUseCase{users: users, log: log.Named("onboarding")}
}

// Status lee el estado desde el registro persistido, no desde la sesión, para tolerar
// sesiones que todavía no reflejan un onboarding recién completado.
func (uc *OnboardingUseCase) Status(ctx context.Context, userID string) (*dto.OnboardingStatusResponse, error) {
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.OnboardingStatusResponse{
		State:        flow.StateOf(user.BusinessType).String(),
		BusinessType: dto.NewUserResponse(user).BusinessType,
	}
	for _, bt := range entity.BusinessTypes() {
		out.Options = append(out.Options, string(bt))
	}
	return out, nil
}

// SelectBusinessType persiste la selección (UNCLASSIFIED → CLASSIFIED).
// CLASSIFIED es terminal: una segunda selección devuelve domain.ErrAlreadyClassified.
func (uc *OnboardingUseCase) SelectBusinessType(ctx context.Context, userID, raw string) (*dto.UserResponse, error) {
	bt, ok := entity.ParseBusinessType(strings.ToUpper(strings.TrimSpace(raw)))
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if flow.StateOf(user.BusinessType) == flow.Classified {
		return nil, domain.ErrAlreadyClassified
	}
	updated, err := uc.users.UpdateFields(ctx, userID, entity.UserPatch{BusinessType: &bt})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("guardar tipo de negocio")
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Str("business_type", string(bt)).Msg("onboarding completado")
	return dto.NewUserResponse(updated), nil
}

// IsClassified informa si el usuario ya completó el onboarding. Una sesión que ya trae
// el tipo de negocio es confiable (estado terminal); si no lo trae se consulta la DB.
func (uc *OnboardingUseCase) IsClassified(ctx context.Context, sess *entity.Session) (bool, error) {
	if sess.Classified() {
		return true, nil
	}
	user, err := uc.load(ctx, sess.UserID)
	if err != nil {
		return false, err
	}
	return flow.StateOf(user.BusinessType) == flow.Classified, nil
}

// Navigate decide la navegación de la vista para path:
//  1. sin sesión → /sign-in
//  2. BANNED → solo /banned (exento del onboarding para no entrar en bucle)
//  3. onboarding (DecideRedirect)
//  4. allow-list de la ruta → /not-found si se deniega
func (uc *OnboardingUseCase) Navigate(ctx context.Context, sess *entity.Session, path string) (*dto.NavigationResponse, error) {
	current := access.Normalize(path)
	out := &dto.NavigationResponse{Path: string(current)}
	deny := func(to access.Route) (*dto.NavigationResponse, error) {
		if to == current {
			// nunca redirigir a la ruta en la que ya está la vista
			out.Allowed = true
			return out, nil
		}
		out.RedirectTo = string(to)
		return out, nil
	}

	if sess == nil {
		if current == access.RouteSignIn {
			out.Allowed = true
			return out, nil
		}
		return deny(access.RouteSignIn)
	}
	if sess.Role == entity.RoleBanned {
		return deny(access.RouteBanned)
	}

	classified, err := uc.IsClassified(ctx, sess)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return deny(access.RouteSignIn)
		}
		return nil, err
	}
	state := flow.Unclassified
	if classified {
		state = flow.Classified
	}
	if to, ok := flow.DecideRedirect(state, current); ok {
		return deny(to)
	}

	if access.IsPublic(string(current)) || access.CanAccessRoute(sess.Role, string(current)) {
		out.Allowed = true
		return out, nil
	}
	return deny(access.DeniedRedirect(sess.Role))
}

func (uc *OnboardingUseCase) load(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
