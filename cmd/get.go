package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/kitsu/kitsu"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <family> <id>...",
	Short: "Fetch resources by id",
	Long: `Fetch one or more resources of a family by their numeric id.

Families: anime, manga, users, characters, producers (singular forms work too).
Multiple ids are fetched concurrently, bounded by client.concurrency.`,
	Example: `  kitsu get anime 1
  kitsu get manga 14916 11014 -o json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	family, err := kitsu.ParseFamily(args[0])
	if err != nil {
		return err
	}

	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}

	logger.Debug().Str("family", string(family)).Int("count", len(ids)).Msg("Fetching resources")

	items, err := fetchAll(cmd.Context(), requester, family, ids, cfg.Client.Concurrency)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputOptions(), family, items)
}
