package cmd

import (
	"context"
	"io"

	"github.com/EO-DataHub/eodhp-users-dashboard/api/views"
	"github.com/EO-DataHub/eodhp-users-dashboard/internal/appconfig"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagPage int
	flagUser int
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Print a page of the users directory and, optionally, one user's posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		setUp()
		appCfg, err := loadConfig()
		if err != nil {
			return err
		}

		var selected *int
		if cmd.Flags().Changed("user") {
			selected = &flagUser
		}

		return runUsers(cmd.Context(), appCfg, cmd.OutOrStdout(), flagPage, selected)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.Flags().IntVar(&flagPage, "page", 1, "page of the directory to show")
	usersCmd.Flags().IntVar(&flagUser, "user", 0, "id of the user whose posts are shown")
}

// runUsers renders one directory page, and the overlay of the selected user,
// once every fetch has settled.
func runUsers(ctx context.Context, appCfg *appconfig.Config, out io.Writer, page int, selected *int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	directory := newDirectory(appCfg)
	directory.Mount(ctx)
	defer directory.Unmount()
	directory.Wait()

	if page != 1 && !directory.Navigate(page) {
		log.Warn().Int("page", page).Msg("page is out of range, showing page 1")
	}

	if selected != nil {
		directory.SelectUser(*selected)
		directory.Wait()
	}

	state, overlay := directory.View()
	return views.RenderText(out, views.NewPage(appCfg.Dashboard.Title, appCfg.BasePath, state, overlay))
}
