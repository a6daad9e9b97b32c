package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()
	sections := []string{m.renderHeader(styles)}

	if banner := m.renderError(styles); banner != "" {
		sections = append(sections, banner)
	}
	if m.mode == modeCompose {
		sections = append(sections, styles.InputFocus.Render(m.compose.View()))
	} else {
		sections = append(sections, styles.InputBox.Render(m.compose.View()))
	}
	sections = append(sections, m.renderBody(styles))
	if m.notice != "" {
		sections = append(sections, styles.WarningText.Render(m.notice))
	}
	sections = append(sections, m.renderFooter(styles))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(styles Styles) string {
	done, open := m.snapshot.Counts()
	left := styles.AccentText.Render("checkoff")
	if m.endpoint != "" {
		left += styles.MutedText.Render("  " + truncate(m.endpoint, 48))
	}
	right := fmt.Sprintf("%d open · %d done", open, done)
	if m.hideCompleted {
		right += " · hiding done"
	}
	if m.snapshot.Loading {
		right = m.spinner.View() + " " + right
	}
	line := left + "  " + styles.MutedText.Render(right)
	if m.width > 0 {
		return styles.Header.Width(m.width).Render(line)
	}
	return styles.Header.Render(line)
}

func (m Model) renderError(styles Styles) string {
	if m.snapshot.Err == "" {
		return ""
	}
	text := m.snapshot.Err + "  " + styles.MutedText.Render("(x to dismiss)")
	return styles.ErrorBanner.Render(text)
}

func (m Model) renderBody(styles Styles) string {
	if m.snapshot.Loading && len(m.snapshot.Items) == 0 {
		return styles.MutedText.Render(m.spinner.View() + " Loading...")
	}
	if m.snapshot.IsEmpty() {
		return styles.FaintText.Render("No todos yet. Press a to add one.")
	}

	items := m.visibleItems()
	if len(items) == 0 {
		return styles.FaintText.Render("All done. Press H to show completed.")
	}

	sess := m.ctrl.Session()
	var b strings.Builder
	for i, item := range items {
		marker := "  "
		if i == m.selected {
			marker = styles.AccentText.Render("> ")
		}
		box := styles.MutedText.Render("[ ]")
		if item.Completed {
			box = styles.SuccessText.Render("[x]")
		}

		label := item.Title
		if m.width > 0 {
			label = truncate(label, m.width-8)
		}

		var title string
		switch {
		case m.mode == modeEdit && sess.Editing(item.ID):
			title = m.edit.View()
		case item.Completed:
			title = styles.Done.Render(label)
		case i == m.selected:
			title = styles.Selected.Render(label)
		default:
			title = styles.Text.Render(label)
		}

		b.WriteString(marker + box + " " + title)
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderFooter(styles Styles) string {
	var view string
	if m.mode == modeBrowse {
		view = m.help.View(m.keys)
	} else {
		view = m.help.View(inputHelp{keys: m.keys})
	}
	return styles.Footer.Render(view)
}
