package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/profilehub/profilehub-go/internal/model"
	"github.com/profilehub/profilehub-go/internal/repository"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect stored user accounts",
	}
	cmd.AddCommand(newUsersListCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every user's public profile as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			setupLogger(cfg)

			users, err := repository.NewUserRepository(repository.NewFileStore(cfg.DataFile)).List(cmd.Context())
			if err != nil {
				return err
			}

			out := make([]model.UserResponse, 0, len(users))
			for i := range users {
				out = append(out, users[i].Public())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().String("data", "", "path of the JSON data file (overrides DATA_FILE)")
	return cmd
}
