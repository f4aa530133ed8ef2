// Package cmd wires the treegen pipeline (tokenize or indent-parse →
// build tree → materialize) into a cobra CLI.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/internal/config"
	"github.com/agentic-research/treegen/internal/materialize"
	"github.com/agentic-research/treegen/internal/parse"
	"github.com/agentic-research/treegen/internal/template"
	"github.com/agentic-research/treegen/internal/tree"
)

var (
	outputDir    string
	dryRun       bool
	fromFile     string
	templateName string
	defaultLang  string
	configPath   string
)

// errPartialFailure marks a run where some branches failed but others
// were created; Execute maps it to a distinct exit code.
var errPartialFailure = errors.New("some entries could not be created")

var (
	headColor = color.New(color.FgCyan, color.Bold)
	dirColor  = color.New(color.FgBlue, color.Bold)
	fileColor = color.New(color.FgGreen)
)

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Base output directory")
	rootCmd.Flags().BoolVar(&dryRun, "dry", false, "Preview the tree without creating anything")
	rootCmd.Flags().StringVar(&fromFile, "from", "", "Load the structure from a text file ('-' for stdin)")
	rootCmd.Flags().StringVar(&templateName, "template", "", "Load the structure from a saved template")
	rootCmd.Flags().StringVar(&defaultLang, "default", "", "Use a built-in language layout (python, rust, web)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <user-config-dir>/treegen/config.hcl)")
}

var rootCmd = &cobra.Command{
	Use:   "treegen [structure ...]",
	Short: "Generate directory and file structures from a terse description",
	Long: `treegen turns a compact description of a project layout into real
directories and files. Structures come from inline arguments
("src/main.rs .. Cargo.toml", with ".." ascending one level and ":"
starting a sibling), from an indented text file, or from a saved
template.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		root, err := buildTree(cfg, args)
		if err != nil {
			return err
		}
		if len(root.Children) == 0 {
			return fmt.Errorf("structure description is empty")
		}

		if dryRun {
			printPreview(cmd.OutOrStdout(), root)
			return nil
		}
		return apply(cmd, cfg, root)
	},
}

// Execute runs the root command. Exit codes: 0 on success, 1 on a
// fatal parse or usage error, 2 when materialization partially failed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		if errors.Is(err, errPartialFailure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// loadConfig reads the user config; a missing file means defaults.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// buildTree resolves the structure input by precedence (template >
// from > default > inline args) and parses it into a node tree.
// Parse errors abort before anything touches the filesystem.
func buildTree(cfg config.Config, args []string) (*tree.Node, error) {
	indentOpts := parse.IndentOptions{CommentMarker: cfg.CommentMarker}

	switch {
	case templateName != "":
		store, err := templateStore(cfg)
		if err != nil {
			return nil, err
		}
		text, err := store.Resolve(templateName)
		if err != nil {
			return nil, err
		}
		return parse.Indent(text, indentOpts)

	case fromFile != "":
		text, err := readFrom(fromFile)
		if err != nil {
			return nil, err
		}
		return parse.Indent(text, indentOpts)

	case defaultLang != "":
		text, ok := template.Builtin(defaultLang)
		if !ok {
			return nil, fmt.Errorf("unknown default layout %q (available: %s)",
				defaultLang, strings.Join(template.Builtins(), ", "))
		}
		return parse.Indent(text, indentOpts)

	case len(args) > 0:
		tokens, err := parse.Tokenize(args)
		if err != nil {
			return nil, err
		}
		return parse.Build(tokens)

	default:
		return nil, fmt.Errorf("no input provided: pass structure arguments or use --from, --template, or --default")
	}
}

func readFrom(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read structure file: %w", err)
	}
	return string(b), nil
}

// templateStore builds the store from config, falling back to the
// conventional per-user directory.
func templateStore(cfg config.Config) (*template.Store, error) {
	dir := cfg.TemplateDir
	if dir == "" {
		var err error
		if dir, err = template.DefaultDir(); err != nil {
			return nil, err
		}
	}
	return &template.Store{Dir: dir}, nil
}

// printPreview renders the planned tree without mutating anything.
func printPreview(w io.Writer, root *tree.Node) {
	headColor.Fprintln(w, "Planned structure:")
	// The lines come from tree.Render, so the preview is the same
	// re-parseable text the round-trip check is stated over, just
	// colorized per line.
	rendered := strings.TrimSuffix(tree.Render(root), "\n")
	for _, line := range strings.Split(rendered, "\n") {
		if strings.HasSuffix(line, "/") {
			dirColor.Fprintln(w, line)
		} else {
			fileColor.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w, "\n(dry run: nothing created)")
}

// apply materializes the tree under the output base and reports an
// aggregate result. The base itself is never created; it must exist.
func apply(cmd *cobra.Command, cfg config.Config, root *tree.Node) error {
	fi, err := os.Stat(outputDir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", outputDir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("output path %s is not a directory", outputDir)
	}

	dirMode, err := cfg.DirMode()
	if err != nil {
		return err
	}
	applier := materialize.New(osfs.New(outputDir), dirMode, cfg.FileModeFor)
	res := applier.Apply(root)

	out := cmd.OutOrStdout()
	for _, o := range res.Outcomes {
		if o.Status == materialize.Failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.RedString("failed:"), o.Err)
		}
	}
	fmt.Fprintf(out, "%d created, %d skipped, %d failed\n", res.Created, res.Skipped, res.Failed)
	if !res.Ok() {
		return errPartialFailure
	}
	return nil
}
