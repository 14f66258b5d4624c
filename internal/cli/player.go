package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerShowCmd())
	cmd.AddCommand(newPlayerSetCmd())
	cmd.AddCommand(newPlayerRemoveCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List club members",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerAddCmd() *cobra.Command {
	var name, nickname, level string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member without an account (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":     name,
				"nickname": nickname,
				"level":    level,
			}
			var result Player

			if err := client.Post("/api/v1/admin/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname (required)")
	cmd.Flags().StringVar(&level, "level", "", "Playing level (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("nickname")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <player-id>",
		Short: "Show one member (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/admin/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerSetCmd() *cobra.Command {
	var attribute, value string

	cmd := &cobra.Command{
		Use:   "set <player-id>",
		Short: "Update one attribute of a member (admin)",
		Long:  "Update one attribute of a member. Attributes: name, nickname, level.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"attribute": attribute,
				"value":     value,
			}
			var result Player

			if err := client.Patch("/api/v1/admin/players/"+args[0], req, &result); err != nil {
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

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <player-id>",
		Short: "Remove a member from the club (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/players/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Player %s removed", args[0]))
			return nil
		},
	}
}
