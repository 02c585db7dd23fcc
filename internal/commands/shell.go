package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/logic"
)

const prompt = "> "

func newShellCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runShell(p, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runShell(p *project, in io.Reader, out io.Writer) error {
	name := p.cfg.Tracker.Name
	if name == "" {
		name = "fintrack"
	}
	fmt.Fprintf(out, "%s: %d records. Type help for commands.\n", name, p.manager.Tracker().Len())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, res, err := p.executeLine(line)
		if err != nil {
			p.logger.Warn("command failed", "input", line, "error", err)
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, res.Feedback)
		if showsList(cmd) {
			fmt.Fprint(out, p.ctx.FormatList(p.manager.FilteredRecords()))
		}
		if res.Exit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// showsList reports whether cmd changed what the filtered view shows.
func showsList(cmd logic.Command) bool {
	switch cmd.(type) {
	case *logic.ListCommand, *logic.FindCommand, *logic.FilterCommand, *logic.UndoCommand, *logic.RedoCommand:
		return true
	}
	return false
}
