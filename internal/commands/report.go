package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/activitylog"
	"github.com/fintrack-dev/fintrack/internal/finance"
	"github.com/fintrack-dev/fintrack/internal/logic"
)

func newListCommand(dir *string) *cobra.Command {
	var categories []string
	var keywords []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print records, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			m := p.manager
			switch {
			case len(categories) > 0:
				m.UpdateFilteredRecordList(finance.HasAnyCategory(m.CaseInsensitive(), categories...))
			case len(keywords) > 0:
				m.UpdateFilteredRecordList(finance.NameContainsAny(keywords...))
			}
			fmt.Fprint(cmd.OutOrStdout(), p.ctx.FormatList(m.FilteredRecords()))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "show records in any of these categories")
	cmd.Flags().StringSliceVarP(&keywords, "find", "f", nil, "show records whose name contains any keyword")

	return cmd
}

func newBudgetCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Print spending against the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, err := (&logic.SummaryCommand{}).Execute(p.ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Feedback)
			return nil
		},
	}
}

func newImportCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <format> <path>",
		Short: "Import expenses from a bank CSV export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			input := "import " + args[0] + " " + args[1]
			res, err := p.execute(input, &logic.ImportCommand{Format: args[0], Path: args[1]})
			if err != nil {
				return err
			}
			p.logger.Info("import finished", "format", args[0], "path", args[1])
			fmt.Fprintln(cmd.OutOrStdout(), res.Feedback)
			return nil
		},
	}
}

func newLogCommand(dir *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the command activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if p.activity == nil {
				return fmt.Errorf("activity log is disabled in %s", p.dir)
			}
			entries, err := p.activity.Read()
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			printEntries(cmd, entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the last n entries")

	return cmd
}

func printEntries(cmd *cobra.Command, entries []activitylog.Entry) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOUTCOME\tINPUT\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Outcome, e.Input, e.Detail)
	}
	tw.Flush()
}
