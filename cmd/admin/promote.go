package main

import (
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/infrastructure/postgres"
	"github.com/jhoicas/donepaid-api/pkg/config"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

const (
	emailFlag = "email"
	roleFlag  = "role"
)

var promoteFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Usage: "Email del usuario (obligatorio)",
	},
	roleFlag: &cobraflags.StringFlag{
		Name:  roleFlag,
		Value: string(entity.RoleSuperAdmin),
		Usage: "Rol a asignar",
	},
}

// newPromoteCommand asigna un rol sin pasar por la política de cambio de rol.
// Es la única vía para crear el primer SUPERADMIN.
func newPromoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Asigna un rol a un usuario existente",
		Example: `  admin promote --email dueño@negocio.co
  admin promote --email ventas@negocio.co --role SALESPERSON`,
		RunE: runPromote,
	}
	cobraflags.RegisterMap(cmd, promoteFlags)
	return cmd
}

func runPromote(cmd *cobra.Command, _ []string) error {
	email := strings.ToLower(strings.TrimSpace(promoteFlags[emailFlag].GetString()))
	if email == "" {
		return fmt.Errorf("--%s es obligatorio", emailFlag)
	}
	role, ok := entity.ParseRole(strings.ToUpper(promoteFlags[roleFlag].GetString()))
	if !ok {
		return fmt.Errorf("rol desconocido %q", promoteFlags[roleFlag].GetString())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	user, err := users.GetByEmail(cmd.Context(), email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no existe un usuario con email %s", email)
	}
	if user.Role == role {
		log.Info().Str("email", email).Str("role", string(role)).Msg("el usuario ya tiene el rol")
		return nil
	}
	if _, err := users.UpdateFields(cmd.Context(), user.ID, entity.UserPatch{Role: &role}); err != nil {
		return err
	}
	log.Info().Str("email", email).Str("from", string(user.Role)).Str("to", string(role)).Msg("rol asignado")
	return nil
}
