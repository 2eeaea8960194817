package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/store"
	"github.com/nhle/notifywatch/internal/theme"
)

var errHistoryDisabled = errors.New("history is disabled, set history.path or pass --history-db")

// printHistory writes the limit most recently seen notifications to w.
func printHistory(w io.Writer, cfg *model.AppConfig, limit int) error {
	if cfg.History.Path == "" {
		return errHistoryDisabled
	}

	hist, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer hist.Close()

	entries, err := hist.GetRecent(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No notifications recorded yet.")
		return nil
	}

	fmt.Fprintln(w, renderHistory(entries))
	return nil
}

// renderHistory formats entries as a table.
func renderHistory(entries []model.HistoryEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		state := ""
		if e.Unread {
			state = "unread"
		}
		rows = append(rows, []string{
			e.FirstSeenAt.Local().Format("2006-01-02 15:04"),
			string(e.Kind),
			e.Summary,
			state,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("SEEN", "KIND", "NOTIFICATION", "").
		Rows(rows...).
		String()
}
