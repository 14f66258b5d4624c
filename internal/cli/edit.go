package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Step-by-step game editing (admin)",
		Long: `Walk through editing a game the way it happens in the group chat:
start a conversation, pick a game, pick an attribute, send the new
value, and repeat until you pick "finish".`,
	}

	cmd.AddCommand(newEditStartCmd())
	cmd.AddCommand(newEditGameCmd())
	cmd.AddCommand(newEditAttributeCmd())
	cmd.AddCommand(newEditValueCmd())
	cmd.AddCommand(newEditCancelCmd())

	return cmd
}

func newEditStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start an edit conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result EditPrompt

			if err := client.Post("/api/v1/admin/edit", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newEditGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <game-id>",
		Short: "Pick the game to edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			req := map[string]int64{"game_id": id}
			var result EditPrompt

			if err := client.Post("/api/v1/admin/edit/game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newEditAttributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attribute <name>",
		Short: "Pick the attribute to change, or \"finish\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"attribute": args[0]}
			var result EditPrompt

			if err := client.Post("/api/v1/admin/edit/attribute", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newEditValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value <value>",
		Short: "Send the new value for the picked attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"value": args[0]}
			var result EditPrompt

			if err := client.Post("/api/v1/admin/edit/value", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newEditCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Abandon the edit conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/edit"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Edit conversation cancelled")
			return nil
		},
	}
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Step-by-step game creation (admin)",
		Long: `Create a game one answer at a time: date, start time, end time,
venue, then capacity. Nothing is saved until the last answer
validates.`,
	}

	cmd.AddCommand(newCreateStartCmd())
	cmd.AddCommand(newCreateValueCmd())
	cmd.AddCommand(newCreateCancelCmd())

	return cmd
}

func newCreateStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a creation conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CreatePrompt

			if err := client.Post("/api/v1/admin/create", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCreateValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value <value>",
		Short: "Answer the current creation prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"value": args[0]}
			var result CreatePrompt

			if err := client.Post("/api/v1/admin/create/value", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCreateCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Abandon the creation conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/create"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Creation conversation cancelled")
			return nil
		},
	}
}
