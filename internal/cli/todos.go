package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/checkoff/internal/api"
)

func addList(topLevel *cobra.Command, opts *rootOptions) {
	output := outputTable
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos in server order.",
		Example: `
checkoff list
checkoff list -o yaml
`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			ctrl, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			if err := settle(ctrl, ctrl.Refresh(cmd.Context())); err != nil {
				return err
			}
			return printTodos(cmd.OutOrStdout(), output, ctrl.Snapshot().Items)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format. One of 'table', 'json' or 'yaml'.")
	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Create a todo.",
		Example: `
checkoff add Buy milk
`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			if err := settle(ctrl, ctrl.Create(cmd.Context(), joinTitle(args))); err != nil {
				return err
			}
			return printCount(cmd, ctrl.Snapshot().Items)
		},
	}
	topLevel.AddCommand(cmd)
}

func addToggle(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between open and done.",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := settle(ctrl, ctrl.Refresh(ctx)); err != nil {
				return err
			}
			if err := settle(ctrl, ctrl.Toggle(ctx, args[0])); err != nil {
				return err
			}
			return printOne(cmd, ctrl.Snapshot().Items, args[0])
		},
	}
	topLevel.AddCommand(cmd)
}

func addRename(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "rename <id> <title...>",
		Short: "Change the title of an open todo.",
		Example: `
checkoff rename 5f1c Buy oat milk
`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id := args[0]
			if err := settle(ctrl, ctrl.Refresh(ctx)); err != nil {
				return err
			}
			if err := settle(ctrl, ctrl.StartEdit(id)); err != nil {
				return err
			}
			if err := settle(ctrl, ctrl.UpdateDraft(joinTitle(args[1:]))); err != nil {
				return err
			}
			if err := settle(ctrl, ctrl.Commit(ctx)); err != nil {
				return err
			}
			return printOne(cmd, ctrl.Snapshot().Items, id)
		},
	}
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo.",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			if err := settle(ctrl, ctrl.Remove(cmd.Context(), args[0])); err != nil {
				return err
			}
			return printCount(cmd, ctrl.Snapshot().Items)
		},
	}
	topLevel.AddCommand(cmd)
}

func printOne(cmd *cobra.Command, items []api.Todo, id string) error {
	for _, item := range items {
		if item.ID == id {
			return printTodos(cmd.OutOrStdout(), outputTable, []api.Todo{item})
		}
	}
	return nil
}

func printCount(cmd *cobra.Command, items []api.Todo) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d todos\n", len(items))
	return err
}
