package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
)

// Set at build time with -ldflags "-X".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errEmptyText = errors.New("empty text")

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item (text can be multiple words)",
		Example: `
todo add Buy milk
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withController(cmd, func(c *todo.Controller) error {
				it, added := c.Add(strings.Join(args, " "))
				if !added {
					return fmt.Errorf("add: %w", errEmptyText)
				}
				ok(cmd.OutOrStdout(), fmt.Sprintf("added #%d", it.ID))
				return nil
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withController(cmd, func(c *todo.Controller) error {
				app.printer(cmd.OutOrStdout()).Render(c.Items())
				return nil
			})
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index|id>",
		Short: "Toggle completion of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withController(cmd, func(c *todo.Controller) error {
				id, err := resolve(cmd, c.Items(), args[0])
				if err != nil {
					return err
				}
				c.Toggle(id)
				it, _ := c.Get(id)
				if it.Completed {
					ok(cmd.OutOrStdout(), "done")
				} else {
					ok(cmd.OutOrStdout(), "reopened")
				}
				return nil
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index|id> <text...>",
		Short: "Replace the text of an item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withController(cmd, func(c *todo.Controller) error {
				id, err := resolve(cmd, c.Items(), args[0])
				if err != nil {
					return err
				}
				if !c.Edit(id, strings.Join(args[1:], " ")) {
					return fmt.Errorf("edit: %w", errEmptyText)
				}
				ok(cmd.OutOrStdout(), "edited")
				return nil
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index|id>",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withController(cmd, func(c *todo.Controller) error {
				id, err := resolve(cmd, c.Items(), args[0])
				if err != nil {
					return err
				}
				c.Delete(id)
				ok(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <index|id...>",
		Short: "Move items to the top, in the order given",
		Example: `
# make the third item first and the first item second
todo mv 3 1
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withController(cmd, func(c *todo.Controller) error {
				items := c.Items()
				named := make([]int64, 0, len(args))
				for _, a := range args {
					id, err := resolve(cmd, items, a)
					if err != nil {
						return err
					}
					named = append(named, id)
				}
				if !c.Reorder(moveToFront(model.IDs(items), named)) {
					hint(cmd.OutOrStdout(), "order unchanged")
					return nil
				}
				// Reorder leaves drawing to the caller.
				if !app.Quiet {
					app.printer(cmd.OutOrStdout()).Render(c.Items())
				}
				ok(cmd.OutOrStdout(), "moved")
				return nil
			})
		},
	}
}

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list (same as running todo alone)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func newVersionCmd() *cobra.Command {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the todo version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			_, err := fmt.Fprint(cmd.OutOrStdout(), resp)
			return err
		},
	}
	// version needs no config or backend
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error { return nil }
	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	return cmd
}
