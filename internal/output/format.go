// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/service"
)

// FormatTask formats one task line.
// Format: "{N:>4}  [{x| }] {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, checkbox(task.Completed), normalizeTitle(task.Title))
}

// FormatTaskLong formats a task line followed by its indented description.
func FormatTaskLong(w io.Writer, num int, task service.Task) {
	FormatTask(w, num, task)
	desc := strings.TrimSpace(task.Description)
	if desc != "" {
		fmt.Fprintf(w, "      %s\n", normalizeTitle(desc))
	}
}

// FormatUser formats the whoami line.
// Format: "{EMAIL} ({NAME})\n", name omitted when empty.
func FormatUser(w io.Writer, u service.User) {
	if u.Name == "" {
		fmt.Fprintln(w, u.Email)
		return
	}
	fmt.Fprintf(w, "%s (%s)\n", u.Email, u.Name)
}

func checkbox(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
