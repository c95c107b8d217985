package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/moktagithub005/news-tool/internal/aggregate"
	"github.com/moktagithub005/news-tool/internal/render"
	"github.com/spf13/cobra"
)

var notesDB string

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Browse and manage saved study notes",
	Long: `Notes manages the local store of saved study notes, keyed by day.

Example:
  newstool notes days
  newstool notes list 2024-06-10
  newstool notes delete 2024-06-10`,
}

var notesDaysCmd = &cobra.Command{
	Use:   "days",
	Short: "List days with saved notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openNotesStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		days, err := store.Days(context.Background())
		if err != nil {
			return fmt.Errorf("list days: %w", err)
		}
		if len(days) == 0 {
			fmt.Println("No saved notes.")
			return nil
		}
		for _, day := range days {
			fmt.Println(day)
		}
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list <date>",
	Short: "Show saved notes for a day as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args[0])
		if err != nil {
			return err
		}

		store, err := openNotesStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		items, err := store.ListDay(context.Background(), day)
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}
		if len(items) == 0 {
			fmt.Printf("No notes saved for %s.\n", day)
			return nil
		}

		set := aggregate.Build(items, aggregate.Options{})
		renderer := render.NewRenderer(day, "")
		return renderer.RenderMarkdown(set, "-")
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete all saved notes for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(args[0])
		if err != nil {
			return err
		}

		store, err := openNotesStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		deleted, err := store.DeleteDay(context.Background(), day)
		if err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}
		fmt.Printf("Deleted %d notes for %s.\n", deleted, day)
		return nil
	},
}

// parseDay validates a YYYY-MM-DD day key.
func parseDay(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t.Format("2006-01-02"), nil
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesDaysCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesDeleteCmd)

	notesCmd.PersistentFlags().StringVar(&notesDB, "db", "", "notes database path (default: $HOME/.newstool/notes.db)")
}
