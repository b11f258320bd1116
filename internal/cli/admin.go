package cli

import (
	"fmt"
	"strings"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/modules/auth"
	"rentalconnect/internal/repository"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newCreateAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an Admin account",
		Long:  "Create an Admin account. Admins cannot sign up through the API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || len(password) < 6 {
				return fmt.Errorf("--email and a --password of at least 6 characters are required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			hash, err := auth.NewService(nil, bcrypt.DefaultCost).HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			u := &domain.User{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash, Role: domain.RoleAdmin}
			if err := repository.NewUserRepository(db).Create(cmd.Context(), u); err != nil {
				if repository.IsUniqueViolation(err) {
					return fmt.Errorf("a user with email %s already exists", email)
				}
				return fmt.Errorf("creating admin: %w", err)
			}

			fmt.Fprintf(out(cmd), "Admin #%d created: %s\n", u.ID, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	return cmd
}
