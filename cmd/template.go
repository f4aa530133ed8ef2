package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/internal/parse"
	"github.com/agentic-research/treegen/internal/template"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage saved structure templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeForCommand()
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no templates saved in %s\n", store.Dir)
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeForCommand()
		if err != nil {
			return err
		}
		text, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save NAME FILE",
	Short: "Save a structure file as a named template ('-' reads stdin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, file := args[0], args[1]
		text, err := readFrom(file)
		if err != nil {
			return err
		}

		// Validate before saving so the store never holds a template
		// that every later run would reject.
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := parse.Indent(text, parse.IndentOptions{CommentMarker: cfg.CommentMarker}); err != nil {
			return fmt.Errorf("refusing to save: %w", err)
		}

		store, err := templateStore(cfg)
		if err != nil {
			return err
		}
		path, err := store.Save(name, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
		return nil
	},
}

// storeForCommand loads config and resolves the template store.
func storeForCommand() (*template.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return templateStore(cfg)
}

func init() {
	templateCmd.AddCommand(templateListCmd, templateShowCmd, templateSaveCmd)
	rootCmd.AddCommand(templateCmd)
}
