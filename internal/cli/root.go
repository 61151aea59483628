package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the conflictpatch CLI.
//
// The root command itself applies the patch sequence; `rules` lists it.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&ApplyOptions{RootOptions: &RootOptions{}})
}

func newRootCommand(applyOpts *ApplyOptions) *cobra.Command {
	opts := applyOpts.RootOptions

	cmd := &cobra.Command{
		Use:   "conflictpatch <game-dir>",
		Short: "Apply the enhancement patches to git-conflict-game",
		Long: `Apply a fixed sequence of source patches to simple-game.js in a
git-conflict-game checkout.

Each patch is guarded so that running the tool again on an already patched
file changes nothing. Patches whose anchor text cannot be found are skipped
and reported.

Example:
  conflictpatch ./git-conflict-game
  conflictpatch --dry-run ./git-conflict-game
  conflictpatch rules --format json`,
		Args:          gameDirArg,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - main prints them once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(applyOpts, args[0], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.Flags().BoolVar(&applyOpts.DryRun, "dry-run", false, "print the line diff without writing the file")

	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}

// gameDirArg requires exactly one positional argument and maps a usage
// mistake to ExitCommandError.
func gameDirArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("Usage: %s /path/to/git-conflict-game", cmd.Root().Name()))
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
