package commands

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garyjia/expense-bills/internal/application/service"
	"github.com/garyjia/expense-bills/internal/domain/entity"
)

func userFlags(cmd *cobra.Command, email *string, admin *bool) {
	cmd.Flags().StringVar(email, "email", "", "owner whose bills are read")
	cmd.Flags().BoolVar(admin, "admin", false, "read every employee's bills")
}

func userFrom(email string, admin bool) (entity.User, error) {
	if admin {
		return entity.User{Type: entity.UserTypeAdmin, Email: email}, nil
	}
	if email == "" {
		return entity.User{}, fmt.Errorf("--email is required unless --admin is set")
	}
	return entity.User{Type: entity.UserTypeEmployee, Email: email}, nil
}

func listCmd() *cobra.Command {
	var (
		email  string
		admin  bool
		limit  int
		offset int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submitted bills, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userFrom(email, admin)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			views, err := a.Bills().ListBills(cmd.Context(), user, service.ListOptions{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTYPE\tNAME\tAMOUNT\tSTATUS\tEMAIL")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", v.DisplayDate, v.Type, v.Name, v.Amount, v.DisplayStatus, v.Email)
			}
			return tw.Flush()
		},
	}
	userFlags(cmd, &email, &admin)
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of bills, 0 for all")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of bills to skip")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		email string
		admin bool
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write submitted bills to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userFrom(email, admin)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			views, err := a.Bills().ListBills(cmd.Context(), user, service.ListOptions{})
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := a.Exporter().WriteBills(&buf, views); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d bills written to %s\n", len(views), out)
			return nil
		},
	}
	userFlags(cmd, &email, &admin)
	cmd.Flags().StringVarP(&out, "out", "o", "notes-de-frais.xlsx", "output file")
	return cmd
}
