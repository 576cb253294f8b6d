package main

import (
	"fmt"
	"os"
	"sort"

	"food-ordering-api/config"
	"food-ordering-api/logger"
	"food-ordering-api/models"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// openDB loads the same configuration the server uses and opens its database
func openDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.LogLevel, true)
	db, err := config.OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// adminCredentials falls back to ADMIN_* settings for flags left empty
func adminCredentials(cfg *config.Config, name, email, password string) (string, string, string, error) {
	if name == "" {
		name = cfg.AdminName
	}
	if email == "" {
		email = cfg.AdminEmail
	}
	if password == "" {
		password = cfg.AdminPassword
	}
	if email == "" || password == "" {
		return "", "", "", fmt.Errorf("admin email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}
	if len(password) < 6 {
		return "", "", "", fmt.Errorf("password must be at least 6 characters")
	}
	return name, email, password, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "foodctl",
		Short:         "Admin scripts for the food ordering API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(seedAdminCmd(), resetAdminCmd(), seedDemoCmd(), clearDBCmd(), createUserCmd())
	return root
}

func seedAdminCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			name, email, password, err = adminCredentials(cfg, name, email, password)
			if err != nil {
				return err
			}
			created, err := config.SeedAdmin(db, name, email, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin '%s' created.\n", email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin '%s' already exists, nothing to do.\n", email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "admin display name")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}

func resetAdminCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "reset-admin",
		Short: "Delete and recreate the admin account with a fresh password",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			name, email, password, err = adminCredentials(cfg, name, email, password)
			if err != nil {
				return err
			}
			user, err := config.ResetAdmin(db, name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin '%s' reset (id %d).\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "admin display name")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "new admin password")
	return cmd
}

func seedDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Insert a demo owner with restaurants and menus",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			if err := config.SeedDemo(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Demo data ready (owner@demo.local / owner123).")
			return nil
		},
	}
}

func clearDBCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-db",
		Short: "Delete every row of every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the database without --yes")
			}
			_, db, err := openDB()
			if err != nil {
				return err
			}
			removed, err := config.ClearAll(db)
			if err != nil {
				return err
			}
			tables := make([]string, 0, len(removed))
			for t := range removed {
				tables = append(tables, t)
			}
			sort.Strings(tables)
			for _, t := range tables {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %d rows removed\n", t, removed[t])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}

func createUserCmd() *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a customer, owner or admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch models.UserRole(role) {
			case models.RoleCustomer, models.RoleOwner, models.RoleAdmin:
			default:
				return fmt.Errorf("role must be one of: customer, owner, admin")
			}
			if name == "" || email == "" || len(password) < 6 {
				return fmt.Errorf("name, email and a password of at least 6 characters are required")
			}
			_, db, err := openDB()
			if err != nil {
				return err
			}
			user, err := config.CreateUser(db, name, email, password, models.UserRole(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User '%s' created with role %s (id %d).\n", user.Email, user.Role, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleCustomer), "customer, owner or admin")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("foodctl failed")
		os.Exit(1)
	}
}
