package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cmakekit/internal/core/domain"
)

func (c *CLI) newTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the targets of the selected build directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := runOptions(cmd)
			out := cmd.OutOrStdout()

			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				return c.app.WatchTargets(cmd.Context(), opts, func(targets []domain.Target) {
					printTargets(out, targets)
				})
			}

			targets, err := c.app.Targets(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printTargets(out, targets)
			return nil
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Print the targets again whenever CMake writes a new reply")
	return cmd
}

func printTargets(w io.Writer, targets []domain.Target) {
	for _, t := range targets {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Kind)
	}
}

func (c *CLI) newKitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kits",
		Short: "List the build kits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := runOptions(cmd)
			kits, err := c.app.Kits(cmd.Context(), opts.Dir)
			if err != nil {
				return err
			}
			sel, err := c.app.Selection(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, k := range kits {
				_, _ = fmt.Fprintf(out, "%s %s\t%s\n", marker(k.Name == sel.Kit), k.Name, k.GeneratorName())
			}
			return nil
		},
	}
}

func (c *CLI) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "types",
		Aliases: []string{"build-types"},
		Short:   "List the build types",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := runOptions(cmd)
			types, err := c.app.BuildTypes(cmd.Context(), opts.Dir)
			if err != nil {
				return err
			}
			sel, err := c.app.Selection(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range types {
				_, _ = fmt.Fprintf(out, "%s %s\n", marker(t.Name == sel.BuildType), t.Name)
			}
			return nil
		},
	}
}

func marker(selected bool) string {
	if selected {
		return "*"
	}
	return " "
}

func (c *CLI) newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the available tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := c.app.Tasks(cmd.Context(), runOptions(cmd).Dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range tasks {
				_, _ = fmt.Fprintln(out, t)
			}
			return nil
		},
	}
}

func (c *CLI) newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select",
		Short: "Persist the kit, build type and target given as flags",
		Long: "Persist the kit, build type and target given with --kit, --build-type and --target.\n" +
			"Without flags the current selection is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := runOptions(cmd)

			var (
				sel domain.Selection
				err error
			)
			if opts.Kit == "" && opts.BuildType == "" && opts.Target == "" {
				sel, err = c.app.Selection(cmd.Context(), opts)
			} else {
				sel, err = c.app.Select(cmd.Context(), opts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "kit:        %s\n", sel.Kit)
			_, _ = fmt.Fprintf(out, "build type: %s\n", sel.BuildType)
			_, _ = fmt.Fprintf(out, "target:     %s\n", sel.Target)
			return nil
		},
	}
}
