package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
	"github.com/jhoicas/donepaid-api/pkg/jwt"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh, logout y validación de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions repository.SessionStore
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions repository.SessionStore, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg, log: log.Named("auth")}
}

// RegisterUser crea un usuario con rol USER y sin tipo de negocio (onboarding pendiente).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return dto.NewUserResponse(user), nil
}

// Login verifica email/password y emite una sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

// Refresh vuelve a leer el usuario persistido y emite una sesión con su rol y tipo de negocio actuales.
// La sesión anterior queda revocada.
func (uc *AuthUseCase) Refresh(ctx context.Context, sess *entity.Session) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	if err := uc.revoke(ctx, sess); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout revoca la sesión hasta su expiración natural.
func (uc *AuthUseCase) Logout(ctx context.Context, sess *entity.Session) error {
	return uc.revoke(ctx, sess)
}

// ParseSession valida el token y produce una sesión tipada. Un claim fuera del enumerado
// invalida la sesión. El rol y el tipo de negocio se leen del registro persistido en cada
// petición: un cambio de rol (p. ej. a BANNED) aplica de inmediato a los tokens ya emitidos.
// Ante cualquier fallo (almacén de revocaciones, DB, usuario borrado) la sesión se rechaza.
func (uc *AuthUseCase) ParseSession(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrInvalidSession
	}
	if claims.UserID == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrInvalidSession
	}
	if _, ok := entity.ParseRole(claims.Role); !ok {
		return nil, domain.ErrInvalidSession
	}
	if claims.BusinessType != "" {
		if _, ok := entity.ParseBusinessType(claims.BusinessType); !ok {
			return nil, domain.ErrInvalidSession
		}
	}
	revoked, err := uc.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		uc.log.Error().Err(err).Msg("consultar sesiones revocadas")
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSession, err)
	}
	if revoked {
		return nil, domain.ErrInvalidSession
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", claims.UserID).Msg("leer usuario de la sesión")
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSession, err)
	}
	if user == nil || !user.Role.Valid() {
		return nil, domain.ErrInvalidSession
	}
	if string(user.Role) != claims.Role {
		uc.log.Debug().Str("user_id", user.ID).Str("token_role", claims.Role).Str("role", string(user.Role)).
			Msg("rol del token desactualizado; se usa el persistido")
	}
	return &entity.Session{
		ID:           claims.ID,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		BusinessType: user.BusinessType,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	sub := jwt.Subject{UserID: user.ID, Email: user.Email, Role: string(user.Role)}
	if user.BusinessType != nil {
		sub.BusinessType = string(*user.BusinessType)
	}
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, sub, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      *dto.NewUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) revoke(ctx context.Context, sess *entity.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := uc.sessions.Revoke(ctx, sess.ID, ttl); err != nil {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}

// IsInvalidSession informa si err corresponde a una sesión rechazada.
func IsInvalidSession(err error) bool {
	return errors.Is(err, domain.ErrInvalidSession)
}
