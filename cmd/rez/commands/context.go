package commands

import (
	"os"

	"github.com/SParksLz/rez/internal/app"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context [file]",
		Short: "Inspect a saved resolved context",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				path = os.Getenv("REZ_RXT_FILE")
			}
			if path == "" {
				return zerr.New("no context file given and REZ_RXT_FILE is not set")
			}

			flags := cmd.Flags()
			verbose, _ := flags.GetBool("verbose")
			validate, _ := flags.GetBool("validate")
			printEnv, _ := flags.GetBool("print-env")
			printCode, _ := flags.GetBool("print-code")
			shellType, _ := flags.GetString("shell")

			return c.app.Context(app.ContextOptions{
				Path:      path,
				Verbose:   verbose,
				Validate:  validate,
				PrintEnv:  printEnv,
				PrintCode: printCode,
				Shell:     shellType,
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show search paths and timestamps in full")
	cmd.Flags().Bool("validate", false, "Check that every resolved package root still exists")
	cmd.Flags().Bool("print-env", false, "Print the context's environment as KEY=VALUE lines")
	cmd.Flags().Bool("print-code", false, "Print the context's generated shell code")
	cmd.Flags().String("shell", "", "Target shell type for --print-code (defaults to $SHELL)")
	return cmd
}
