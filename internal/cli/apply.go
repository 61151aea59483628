package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/conflictpatch/internal/engine"
	"github.com/roach88/conflictpatch/internal/gateway"
	"github.com/roach88/conflictpatch/internal/patch"
	"github.com/roach88/conflictpatch/internal/rules"
)

// ApplyOptions holds flags for the apply (root) command.
type ApplyOptions struct {
	*RootOptions
	DryRun bool

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// ApplyResult is the JSON payload of a run.
type ApplyResult struct {
	Path    string         `json:"path"`
	DryRun  bool           `json:"dry_run"`
	Written bool           `json:"written"`
	Diff    string         `json:"diff,omitempty"`
	Report  *engine.Report `json:"report"`
}

var nextSteps = []string{
	"Review the changes in your git-conflict-game repository",
	"Commit and push the changes to GitHub",
	"Run your enhanced game and enjoy the improvements!",
}

func runApply(opts *ApplyOptions, gameDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	path, err := gateway.Locate(gameDir, rules.TargetFile)
	if err != nil {
		code := ErrCodeNotFound
		if errors.Is(err, gateway.ErrNotRegular) {
			code = ErrCodeNotRegular
		}
		_ = formatter.Error(code, fmt.Sprintf("Could not find %s", path),
			"Make sure the path to your git-conflict-game repository is correct.")
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: could not find %s", code, path), err)
	}
	formatter.Textf("Found game file at: %s", path)

	formatter.Textf("Reading file content...")
	before, err := gateway.Read(path)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeReadFailed+": failed to read target", err)
	}

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = engine.UUIDv7Generator{}
	}
	eng := engine.New(rules.Sequence(),
		engine.WithLogger(logger),
		engine.WithRunIDGenerator(runIDs),
	)

	formatter.Textf("Applying fixes...")
	after, report := eng.Run(before)
	report.Target = path

	for _, rr := range report.Rules {
		formatter.VerboseLog("[%2d] %-34s %s %s", rr.Index, rr.ID, rr.Outcome, rr.Reason)
	}

	result := &ApplyResult{Path: path, DryRun: opts.DryRun, Report: report}

	switch {
	case opts.DryRun:
		result.Diff = lineDiff(before, after)
	case report.Changed():
		formatter.Textf("Saving changes...")
		if err := gateway.Write(path, after); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitFailure, ErrCodeWriteFailed+": failed to save changes", err)
		}
		result.Written = true
		logger.Info("target written", "path", path, "bytes", len(after))
	}

	return outputApplySuccess(formatter, result)
}

// newLogger builds the slog logger for a run: text on stderr, Debug when
// verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func outputApplySuccess(formatter *OutputFormatter, result *ApplyResult) error {
	report := result.Report
	if formatter.JSON() {
		return formatter.SuccessWithRun(report.RunID, result)
	}

	w := formatter.Writer
	p := message.NewPrinter(language.English)
	name := rules.TargetFile

	switch {
	case result.DryRun && result.Diff == "":
		fmt.Fprintf(w, "Dry run: %s is already up to date.\n", name)
	case result.DryRun:
		fmt.Fprintf(w, "Dry run: changes that would be made to %s:\n\n", name)
		fmt.Fprint(w, result.Diff)
	case result.Written:
		fmt.Fprintf(w, "✅ Successfully applied fixes to %s!\n", name)
	default:
		fmt.Fprintf(w, "%s is already up to date; nothing written.\n", name)
	}

	if applied := report.WithOutcome(patch.OutcomeApplied); len(applied) > 0 {
		fmt.Fprintln(w)
		if result.DryRun {
			fmt.Fprintln(w, "Changes that would be made:")
		} else {
			fmt.Fprintln(w, "Changes made:")
		}
		for _, rr := range applied {
			fmt.Fprintf(w, "- %s\n", rr.Summary)
		}
	}

	missing := report.WithOutcome(patch.OutcomeNoAnchor)
	partial := 0
	for _, rr := range report.Rules {
		if rr.Partial {
			partial++
		}
	}
	if len(missing) > 0 || partial > 0 || len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, rr := range missing {
			fmt.Fprintf(w, "- %s: anchor not found, rule skipped\n", rr.ID)
		}
		for _, rr := range report.Rules {
			if rr.Partial {
				fmt.Fprintf(w, "- %s: applied partially (%v)\n", rr.ID, rr.Edits)
			}
		}
		for _, msg := range report.Warnings {
			fmt.Fprintf(w, "- %s\n", msg)
		}
	}

	fmt.Fprintln(w)
	p.Fprintf(w, "%d applied, %d skipped by guard, %d already applied, %d without anchor (%d → %d bytes)\n",
		report.Count(patch.OutcomeApplied),
		report.Count(patch.OutcomeSkippedByGuard),
		report.Count(patch.OutcomeAlreadyApplied),
		report.Count(patch.OutcomeNoAnchor),
		report.BytesBefore,
		report.BytesAfter,
	)

	if result.Written {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		for i, step := range nextSteps {
			fmt.Fprintf(w, "%d. %s\n", i+1, step)
		}
	}
	return nil
}
