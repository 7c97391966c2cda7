// Package commands implements the CLI commands for cmakekit.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cmakekit/internal/app"
	"go.trai.ch/cmakekit/internal/build"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
)

// CLI represents the command line interface for cmakekit.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	RunTask(ctx context.Context, task domain.TaskName, opts app.RunOptions) error
	Targets(ctx context.Context, opts app.RunOptions) ([]domain.Target, error)
	WatchTargets(ctx context.Context, opts app.RunOptions, emit func([]domain.Target)) error
	Kits(ctx context.Context, dir string) ([]domain.BuildKit, error)
	BuildTypes(ctx context.Context, dir string) ([]domain.BuildTypeProfile, error)
	Tasks(ctx context.Context, dir string) ([]domain.TaskName, error)
	Selection(ctx context.Context, opts app.RunOptions) (domain.Selection, error)
	Select(ctx context.Context, opts app.RunOptions) (domain.Selection, error)
}

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	c := &CLI{
		app:    a,
		logger: log,
	}

	rootCmd := &cobra.Command{
		Use:           "cmakekit",
		Short:         "Resolve build kits and build types into CMake invocations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if asJSON, _ := cmd.Flags().GetBool("log-json"); asJSON {
				if l, ok := c.logger.(jsonLogger); ok {
					l.SetJSON(true)
				}
			}
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("kit", "k", "", "Build kit to use instead of the selected one")
	flags.StringP("build-type", "t", "", "Build type to use instead of the selected one")
	flags.String("target", "", "Target to use instead of the selected one")
	flags.StringP("dir", "C", "", "Run as if started in this directory")
	flags.Bool("log-json", false, "Write log output as JSON")

	c.rootCmd = rootCmd

	for _, cmd := range c.newTaskCmds() {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(c.newTargetsCmd())
	rootCmd.AddCommand(c.newKitsCmd())
	rootCmd.AddCommand(c.newTypesCmd())
	rootCmd.AddCommand(c.newTasksCmd())
	rootCmd.AddCommand(c.newSelectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions reads the persistent selection flags.
func runOptions(cmd *cobra.Command) app.RunOptions {
	kit, _ := cmd.Flags().GetString("kit")
	buildType, _ := cmd.Flags().GetString("build-type")
	target, _ := cmd.Flags().GetString("target")
	dir, _ := cmd.Flags().GetString("dir")
	return app.RunOptions{
		Dir:       dir,
		Kit:       kit,
		BuildType: buildType,
		Target:    target,
	}
}
