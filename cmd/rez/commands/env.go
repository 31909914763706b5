package commands

import (
	"github.com/SParksLz/rez/internal/app"
	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env [packages...]",
		Short: "Resolve packages and enter the configured environment",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			mode, err := resolveMode(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			shellType, _ := flags.GetString("shell")
			command, _ := flags.GetString("command")
			stdin, _ := flags.GetBool("stdin")
			quiet, _ := flags.GetBool("quiet")
			noRC, _ := flags.GetBool("norc")
			rcFile, _ := flags.GetString("rcfile")
			printEnv, _ := flags.GetBool("print-env")
			printCode, _ := flags.GetBool("print-code")
			savePath, _ := flags.GetString("save")
			noImplicit, _ := flags.GetBool("no-implicit")
			noCache, _ := flags.GetBool("no-cache")
			timestamp, _ := flags.GetInt64("time")

			code, err := c.app.Env(cmd.Context(), app.EnvOptions{
				Packages:   args,
				Mode:       mode,
				Timestamp:  timestamp,
				NoImplicit: noImplicit,
				NoCache:    noCache,
				SavePath:   savePath,
				Shell:      shellType,
				Command:    command,
				Stdin:      stdin,
				Quiet:      quiet,
				NoRC:       noRC,
				RCFile:     rcFile,
				PrintEnv:   printEnv,
				PrintCode:  printCode,
			}, cmd.OutOrStdout())
			c.exitCode = code
			return err
		},
	}

	cmd.Flags().String("shell", "", "Target shell type (defaults to $SHELL)")
	cmd.Flags().StringP("command", "c", "", "Run a command within the environment instead of an interactive shell")
	cmd.Flags().Bool("stdin", false, "Read shell input from stdin")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress the welcome message")
	cmd.Flags().Bool("norc", false, "Skip the user's shell startup file")
	cmd.Flags().String("rcfile", "", "Source this startup file instead of the user's default")
	cmd.Flags().Bool("print-env", false, "Print the resolved environment as KEY=VALUE lines and exit")
	cmd.Flags().Bool("print-code", false, "Print the generated shell code and exit")
	cmd.Flags().StringP("save", "s", "", "Save the resolved context to this file")
	cmd.Flags().Bool("no-implicit", false, "Do not add implicit packages to the request")
	cmd.Flags().Bool("no-cache", false, "Bypass the resolve cache")
	cmd.Flags().String("mode", "latest", "Version selection mode: latest or earliest")
	cmd.Flags().Int64P("time", "t", 0, "Only use packages released before this epoch time")
	return cmd
}

func resolveMode(cmd *cobra.Command) (domain.ResolveMode, error) {
	mode, _ := cmd.Flags().GetString("mode")
	switch mode {
	case "", "latest":
		return domain.ModeLatest, nil
	case "earliest":
		return domain.ModeEarliest, nil
	}
	return "", zerr.With(zerr.New("unknown resolve mode"), "mode", mode)
}
