package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "slotctl",
		Short:         "Inspect and reset the durable activity and task slots",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(clearCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured slots and whether they hold a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				return s.list(cmd.Context(), cmd.OutOrStdout())
			})
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <activities|tasks|key>",
		Short: "Print the raw snapshot stored in a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				return s.show(cmd.Context(), cmd.OutOrStdout(), args[0])
			})
		},
	}
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <activities|tasks|key>",
		Short: "Decode a slot the way the server would on mount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			return withSession(cmd, func(s *session) error {
				return s.check(cmd.Context(), cmd.OutOrStdout(), args[0], strict)
			})
		},
	}
	cmd.Flags().Bool("strict", false, "Validate with the strict hydration policy")
	return cmd
}

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <activities|tasks|key>",
		Short: "Remove a slot so the next mount starts from the defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("refusing to clear %q without --yes", args[0])
			}
			return withSession(cmd, func(s *session) error {
				return s.clear(cmd.Context(), cmd.OutOrStdout(), args[0])
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Confirm the slot should be removed")
	return cmd
}
