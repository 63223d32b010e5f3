package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Highscore commands",
	}

	cmd.AddCommand(newScoreSubmitCmd())
	cmd.AddCommand(newScoreListCmd())
	cmd.AddCommand(newScoreClearCmd())

	return cmd
}

func newScoreSubmitCmd() *cobra.Command {
	var (
		userID     int64
		playerName string
		gameTime   float64
		mistakes   int
		mode       string
		gridSize   int
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a finished game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"user_id":     userID,
				"player_name": playerName,
				"time":        gameTime,
				"mistakes":    mistakes,
				"mode":        mode,
				"grid_size":   gridSize,
			}
			var result SubmitResult

			if err := client.Post("/api/v1/highscores", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "Account id (omit for guest play)")
	cmd.Flags().StringVar(&playerName, "name", "", "Display name (defaults to Guest)")
	cmd.Flags().Float64Var(&gameTime, "time", 0, "Completion time in seconds (required)")
	cmd.Flags().IntVar(&mistakes, "mistakes", 0, "Mistake count")
	cmd.Flags().StringVar(&mode, "mode", "", "Game mode: classic or timeattack")
	cmd.Flags().IntVar(&gridSize, "grid-size", 0, "Grid size: 3, 4 or 5")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newScoreListCmd() *cobra.Command {
	var (
		limit    int
		userID   int64
		mode     string
		gridSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List highscores, fastest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if limit > 0 {
				q.Set("limit", fmt.Sprint(limit))
			}
			if userID > 0 {
				q.Set("user_id", fmt.Sprint(userID))
			}
			if mode != "" {
				q.Set("mode", mode)
			}
			if gridSize > 0 {
				q.Set("grid_size", fmt.Sprint(gridSize))
			}

			path := "/api/v1/highscores"
			if encoded := q.Encode(); encoded != "" {
				path += "?" + encoded
			}

			var result []HighscoreResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			PrintList(NewOutput(cfg.Output), result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to return")
	cmd.Flags().Int64Var(&userID, "user-id", 0, "Filter by account id")
	cmd.Flags().StringVar(&mode, "mode", "", "Filter by game mode")
	cmd.Flags().IntVar(&gridSize, "grid-size", 0, "Filter by grid size")

	return cmd
}

func newScoreClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all highscores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/highscores"); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("highscores cleared")
			return nil
		},
	}
}
