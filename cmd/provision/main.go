// Command provision creates or removes accounts that cannot be registered
// over the API, such as the first admin.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/youthcare-backend/internal/app"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "provision",
		Short:        "Create or delete accounts directly in the database",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(deleteCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createCmd() *cobra.Command {
	var (
		in  services.RegisterInput
		dob string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account of any role, admin included",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dob != "" {
				t, err := time.Parse("2006-01-02", dob)
				if err != nil {
					return fmt.Errorf("--dob must be YYYY-MM-DD: %w", err)
				}
				in.DateOfBirth = &t
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				u, err := a.Services.Auth.Provision(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("provision %s: %w", in.Email, err)
				}
				fmt.Printf("created %s account %s (%s)\n", u.Role, u.Email, u.ID)
				fmt.Println("change the password after the first login")
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Email, "email", "", "account email")
	f.StringVar(&in.Password, "password", "", "initial password")
	f.StringVar(&in.Role, "role", user.RoleAdmin, "admin, coach, clinician, parent or youth")
	f.StringVar(&in.FirstName, "first", "Admin", "first name")
	f.StringVar(&in.LastName, "last", "User", "last name")
	f.StringVar(&dob, "dob", "", "date of birth, required for youth (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func deleteCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account and everything it owns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				return deleteAccount(cmd.Context(), a, email)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func withApp(ctx context.Context, fn func(a *app.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()
	return fn(a)
}

func deleteAccount(ctx context.Context, a *app.App, email string) error {
	dbc := dbctx.Context{Ctx: ctx}
	u, err := a.Repos.User.GetByEmail(dbc, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("no account with email %s", email)
	}
	if err := a.Repos.User.Delete(dbc, u.ID); err != nil {
		return fmt.Errorf("delete %s: %w", email, err)
	}
	fmt.Printf("deleted %s account %s\n", u.Role, u.Email)
	return nil
}
