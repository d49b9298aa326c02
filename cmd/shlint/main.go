// shlint diagnoses shell scripts using rash's front end: it never
// evaluates a word of the input, only lexes and parses it.
package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/renameio/v2"
	diffpkg "github.com/pkg/diff"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rashparse.dev/rash/syntax"
)

func main() {
	os.Exit(main1())
}

// main1 runs the command tree and returns a process exit code rather than
// calling os.Exit directly, so it can also be registered as a testscript
// subcommand (see script_test.go) without forking a real subprocess per
// invocation.
func main1() int {
	if err := rootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shlint",
		Short:         "diagnose shell scripts with the rash front end",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	var posix bool
	check := &cobra.Command{
		Use:   "check <files...>",
		Short: "parse each file and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, posix)
		},
	}
	check.Flags().BoolVar(&posix, "posix", false, "use strict POSIX grammar")
	root.AddCommand(check)

	diffCmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "show a normalized-form diff without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], false)
		},
	}
	root.AddCommand(diffCmd)

	fixCmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "atomically rewrite a file to its normalized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], true)
		},
	}
	root.AddCommand(fixCmd)

	return root
}

// runCheck parses every file concurrently (one Parse call per file, each
// fully independent per the front end's single-threaded-per-call contract)
// and prints diagnostics in file order once all have finished.
func runCheck(cmd *cobra.Command, files []string, posix bool) error {
	cfg := syntax.BashCompatConfig()
	if posix {
		cfg = syntax.StrictPOSIXConfig()
	}

	results := make([][]string, len(files))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(cmd.Context())
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			lines, failed := lintFile(f, cfg)
			mu.Lock()
			results[i] = lines
			mu.Unlock()
			if failed {
				return fmt.Errorf("%s: parse errors", f)
			}
			return nil
		})
	}
	runErr := g.Wait()

	hadErrors := false
	for _, lines := range results {
		for _, l := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), l)
			hadErrors = true
		}
	}
	if runErr != nil || hadErrors {
		return fmt.Errorf("one or more files failed to parse cleanly")
	}
	return nil
}

func lintFile(path string, cfg syntax.ParserConfig) ([]string, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", path, err)}, true
	}
	cfg.CollectErrors = true
	_, errs := syntax.ParseCollecting(src, cfg)
	if len(errs) == 0 {
		return nil, false
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Pos.Offset < errs[j].Pos.Offset })
	lines := make([]string, len(errs))
	for i, e := range errs {
		d := syntax.Diagnostic{Severity: syntax.SeverityError, Message: e.Message, Pos: e.Pos}
		lines[i] = d.Render(path)
	}
	return lines, true
}

// runDiff parses file, prints (or applies) a normalized-form rewrite. It
// refuses to touch a file that doesn't parse cleanly: normalizing a
// partial AST would silently drop the offending construct.
func runDiff(cmd *cobra.Command, path string, write bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	top, perr, err := syntax.Parse(src, syntax.BashCompatConfig())
	if err != nil {
		for _, e := range perr {
			d := syntax.Diagnostic{Severity: syntax.SeverityError, Message: e.Message, Pos: e.Pos}
			fmt.Fprintln(cmd.ErrOrStderr(), d.Render(path))
		}
		return fmt.Errorf("%s does not parse cleanly, refusing to normalize", path)
	}
	normalized := syntax.Print(top)
	if write {
		return renameio.WriteFile(path, []byte(normalized), 0o644)
	}
	return diffpkg.Text(path, path+".normalized", bytes.NewReader(src), bytes.NewReader([]byte(normalized)), cmd.OutOrStdout())
}
