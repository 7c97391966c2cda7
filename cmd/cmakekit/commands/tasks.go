package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/cmakekit/internal/core/domain"
)

type taskCmd struct {
	task  domain.TaskName
	short string
	use   string
	args  cobra.PositionalArgs
}

var taskCmds = []taskCmd{
	{task: domain.TaskConfigure, short: "Configure the build directory"},
	{task: domain.TaskBuild, short: "Build the selected target"},
	{task: domain.TaskBuildAll, short: "Build all targets"},
	{task: domain.TaskBuildCurrentFile, short: "Compile a single source file", use: "<file>", args: cobra.ExactArgs(1)},
	{task: domain.TaskRun, short: "Build and run the selected executable", use: "[-- args...]", args: cobra.ArbitraryArgs},
	{task: domain.TaskDebug, short: "Build and debug the selected executable", use: "[-- args...]", args: cobra.ArbitraryArgs},
	{task: domain.TaskClean, short: "Clean the build directory"},
	{task: domain.TaskCTest, short: "Run the test suite with ctest"},
	{task: domain.TaskPurge, short: "Remove the build directory"},
	{task: domain.TaskReconfigure, short: "Purge and configure the build directory"},
}

func (c *CLI) newTaskCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(taskCmds))
	for _, tc := range taskCmds {
		cmds = append(cmds, c.newTaskCmd(tc))
	}
	return cmds
}

func (c *CLI) newTaskCmd(tc taskCmd) *cobra.Command {
	name := strings.ReplaceAll(string(tc.task), "_", "-")
	use := name
	if tc.use != "" {
		use += " " + tc.use
	}
	args := tc.args
	if args == nil {
		args = cobra.NoArgs
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: tc.short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions(cmd)
			switch tc.task {
			case domain.TaskBuildCurrentFile:
				opts.File = args[0]
			case domain.TaskRun, domain.TaskDebug:
				opts.Args = args
			default:
			}
			return c.app.RunTask(cmd.Context(), tc.task, opts)
		},
	}
	if name != string(tc.task) {
		cmd.Aliases = []string{string(tc.task)}
	}
	return cmd
}
