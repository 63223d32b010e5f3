package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List login history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if limit > 0 {
				q.Set("limit", fmt.Sprint(limit))
			}
			if userID > 0 {
				q.Set("user_id", fmt.Sprint(userID))
			}

			path := "/api/v1/history"
			if encoded := q.Encode(); encoded != "" {
				path += "?" + encoded
			}

			var result []HistoryResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			PrintList(NewOutput(cfg.Output), result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to return")
	cmd.Flags().Int64Var(&userID, "user-id", 0, "Filter by account id")

	return cmd
}
