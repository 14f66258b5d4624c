package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game schedule commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameRosterCmd())
	cmd.AddCommand(newGameAddCmd())
	cmd.AddCommand(newGameSetCmd())
	cmd.AddCommand(newGameRemoveCmd())
	cmd.AddCommand(newGameCancelCmd())
	cmd.AddCommand(newGameAnnounceCmd())
	cmd.AddCommand(newGameSweepCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster <game-id>",
		Short: "Show who's playing and who's waiting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster

			if err := client.Get("/api/v1/games/"+args[0]+"/roster", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAddCmd() *cobra.Command {
	var date, start, end, venue string
	var capacity int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a game in one shot (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"event_date": date,
				"start_time": start,
				"end_time":   end,
				"venue":      venue,
				"capacity":   capacity,
			}
			var result Game

			if err := client.Post("/api/v1/admin/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Game date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&start, "start", "", "Start time, HH:MM (required)")
	cmd.Flags().StringVar(&end, "end", "", "End time, HH:MM (required)")
	cmd.Flags().StringVar(&venue, "venue", "", "Venue (required)")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Roster slots (required)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("venue")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func newGameSetCmd() *cobra.Command {
	var attribute, value string

	cmd := &cobra.Command{
		Use:   "set <game-id>",
		Short: "Update one attribute of a game (admin)",
		Long:  "Update one attribute of a game. Attributes: event_date, start_time, end_time, venue, capacity.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"attribute": attribute,
				"value":     value,
			}
			var result Game

			if err := client.Patch("/api/v1/admin/games/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&attribute, "attribute", "", "Attribute to change (required)")
	cmd.Flags().StringVar(&value, "value", "", "New value (required)")
	_ = cmd.MarkFlagRequired("attribute")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newGameRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <game-id>",
		Short: "Delete a game outright (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s removed", args[0]))
			return nil
		},
	}
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <game-id>",
		Short: "Call off a game and notify the group (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/admin/games/"+args[0]+"/cancel", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s cancelled", args[0]))
			return nil
		},
	}
}

func newGameAnnounceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "announce <game-id>",
		Short: "Announce a game to the group now (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/admin/games/"+args[0]+"/announce", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s announced", args[0]))
			return nil
		},
	}
}

func newGameSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Finish elapsed games and announce due ones (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SweepResult

			if err := client.Post("/api/v1/admin/games/sweep", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
