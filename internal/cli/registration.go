package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newRegistrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reg",
		Short: "Registration commands",
	}

	cmd.AddCommand(newRegJoinCmd())
	cmd.AddCommand(newRegConfirmCmd())
	cmd.AddCommand(newRegSwapCmd())
	cmd.AddCommand(newRegCancelCmd())
	cmd.AddCommand(newRegMineCmd())
	cmd.AddCommand(newRegAddCmd())
	cmd.AddCommand(newRegDropCmd())

	return cmd
}

func newRegJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id>",
		Short: "Register for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Admission

			if err := client.Post("/api/v1/games/"+args[0]+"/registrations", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRegConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <registration-id>",
		Short: "Confirm your spot on the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/registrations/"+args[0]+"/confirm", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Spot confirmed")
			return nil
		},
	}
}

func newRegSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <registration-id>",
		Short: "Offer your confirmed spot to the waitlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/registrations/"+args[0]+"/swap", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Swap requested")
			return nil
		},
	}
}

func newRegCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <registration-id>",
		Short: "Cancel your registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CancelResult

			if err := client.Do(http.MethodDelete, "/api/v1/registrations/"+args[0], nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRegMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your registrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []PlayerRegistration

			if err := client.Get("/api/v1/players/me/registrations", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRegAddCmd() *cobra.Command {
	var nickname string

	cmd := &cobra.Command{
		Use:   "add <game-id>",
		Short: "Register a member by nickname on their behalf (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"nickname": nickname}
			var result Admission

			if err := client.Post("/api/v1/admin/games/"+args[0]+"/registrations", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Member's nickname (required)")
	_ = cmd.MarkFlagRequired("nickname")

	return cmd
}

func newRegDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <game-id> <player-id>",
		Short: "Take a member off a game (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CancelResult

			path := fmt.Sprintf("/api/v1/admin/games/%s/registrations/%s", args[0], args[1])
			if err := client.Do(http.MethodDelete, path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
