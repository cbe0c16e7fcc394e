package commands

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/garyjia/expense-bills/internal/format"
)

func formatDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format-date YYYY-MM-DD...",
		Short: "Print dates the way the bills page shows them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				out, ok := format.FormatDate(arg)
				if !ok {
					return fmt.Errorf("cannot format date %q", arg)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}

func formatStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format-status CODE",
		Short: "Print the label of a bill status code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, ok := format.FormatStatus(args[0])
			if !ok {
				return fmt.Errorf("unknown status %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

func checkReceiptCmd() *cobra.Command {
	var declared string
	cmd := &cobra.Command{
		Use:   "check-receipt FILE",
		Short: "Tell whether a file would be accepted as a receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detected, err := mimetype.DetectFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			candidate := &format.UploadCandidate{Name: args[0], Type: declared}
			if candidate.Type == "" {
				candidate.Type = detected.String()
			}

			ok := format.IsAcceptableReceipt(candidate) && format.IsAcceptableReceiptType(detected.String())
			verdict := "rejected"
			if ok {
				verdict = "accepted"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (declared %s, content %s)\n", args[0], verdict, candidate.Type, detected.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&declared, "type", "", "declared MIME type (default: sniffed from content)")
	return cmd
}
