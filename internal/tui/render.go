package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"salesmap/internal/model"
	"salesmap/internal/selection"
)

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	paneStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusPaneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	fieldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewOwners:
		body = a.renderOwners()
	case viewEditor:
		body = a.renderEditor()
	default:
		body = a.renderRegions()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	return body
}

func (a *App) renderRegions() string {
	out := titleStyle.Render("Regions") + "\n"
	regions := a.regions.List()
	if len(regions) == 0 {
		out += "(no regions yet)\n"
	}
	for i, r := range regions {
		marker := " "
		if i == a.regionCursor {
			marker = "▶"
		}
		swatch := "     "
		if r.Color != model.ColorUnset {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(r.Color)).Render("     ")
		}
		out += fmt.Sprintf("%s %s %-24s  %-24s  %d territories\n",
			marker, swatch, r.Name, a.ownerLabel(r.OwnerID), len(r.Territories))
	}
	out += "\n" + renderHelp(a.keys.listHelp())
	return out
}

func (a *App) renderOwners() string {
	out := titleStyle.Render("Sales People") + "\n"
	owners := a.owners.List()
	if len(owners) == 0 {
		out += "(no sales people yet)\n"
	}
	for i, o := range owners {
		marker := " "
		if i == a.ownerCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-28s  %-28s  %s\n", marker, o.DisplayName(), o.Email, o.Phone)
	}
	out += "\n" + renderHelp(a.keys.listHelp())
	return out
}

func (a *App) renderEditor() string {
	ed := a.editor
	draft := a.regions.Draft()
	if ed == nil || draft == nil {
		return ""
	}
	title := "New Region"
	if a.regions.DraftState() == model.DraftEditing {
		title = "Edit Region"
	}
	out := titleStyle.Render(title) + "\n"

	out += a.renderField("Name", draft.Name, ed.focus == focusName, ed.errors["name"]) + "\n"
	colorText := "(unset)"
	if draft.Color != model.ColorUnset {
		colorText = lipgloss.NewStyle().Background(lipgloss.Color(draft.Color)).Render("   ") + " " + draft.Color
	}
	out += a.renderField("Color", colorText, ed.focus == focusColor, "") + "\n"
	out += a.renderField("Owner", a.ownerLabel(draft.OwnerID), false, ed.errors["owner"]) + "\n\n"

	left := a.renderPane("Available", selection.SideAvailable, ed.focus == focusAvailable)
	right := a.renderPane("Chosen", selection.SideChosen, ed.focus == focusChosen)
	out += lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	out += "\n" + renderHelp(a.keys.editorHelp())
	return out
}

func (a *App) renderField(label, value string, focused bool, errText string) string {
	marker := "  "
	if focused {
		marker = "▶ "
	}
	line := fmt.Sprintf("%s%-7s %s", marker, label+":", fieldStyle.Render(value))
	if focused && (label == "Name") {
		line += "▌"
	}
	if errText != "" {
		line += "  " + errorStyle.Render(errText)
	}
	return line
}

// paneHeight caps the visible rows per pane; the cursor window follows it.
const paneHeight = 14

func (a *App) renderPane(title string, side selection.Side, focused bool) string {
	ed := a.editor
	rows := ed.sel.Visible(side)
	cursor := ed.cursor[side]

	header := title
	query := ed.sel.Query(side)
	if query != "" || (focused && ed.filtering) {
		header += " /" + query
		if focused && ed.filtering {
			header += "▌"
		}
	}
	if n := ed.sel.HighlightCount(side); n > 0 {
		header += fmt.Sprintf(" (%d marked)", n)
	}

	top := 0
	if cursor >= paneHeight {
		top = cursor - paneHeight + 1
	}
	end := top + paneHeight
	if end > len(rows) {
		end = len(rows)
	}

	lines := []string{header}
	for i := top; i < end; i++ {
		item := rows[i]
		marker := "  "
		if focused && i == cursor {
			marker = "> "
		}
		mark := "[ ] "
		if ed.sel.Highlighted(side, item) {
			mark = "[x] "
		}
		line := marker + mark + item
		if ed.sel.Highlighted(side, item) {
			line = highlightStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(rows) == 0 {
		lines = append(lines, "  (none)")
	}
	content := strings.Join(lines, "\n")
	style := paneStyle
	if focused {
		style = focusPaneStyle
	}
	return style.Width(34).Render(content)
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalOwnerForm:
		return a.renderOwnerForm()
	case modalConfirmOwner:
		return titleStyle.Render("Delete sales person?") + "\nRegions they own will become unassigned.\n[y] Yes  [n] No"
	case modalConfirmRegion:
		return titleStyle.Render("Delete region?") + "\n[y] Yes  [n] No"
	case modalOwnerPicker:
		out := titleStyle.Render("Assign Sales Person") + "\n"
		owners := a.owners.List()
		if len(owners) == 0 {
			out += "(no sales people - add one from the owners view)\n"
		}
		for i, o := range owners {
			marker := " "
			if i == a.pickerCursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %s\n", marker, o.DisplayName())
		}
		out += "[enter] Assign  [esc] Cancel"
		return out
	case modalImport:
		return titleStyle.Render("Import regions document") +
			fmt.Sprintf("\nPath: %s▌\nOnly .json documents are accepted. The current workspace will be replaced.\n[enter] Import  [esc] Cancel", a.importPath)
	case modalExport:
		labels := [3]string{"Width", "Height", "DPI"}
		values := [3]int{a.export.Width, a.export.Height, a.export.DPI}
		out := titleStyle.Render("Generate Map") + "\n"
		for i := 0; i < 3; i++ {
			marker := " "
			text := fmt.Sprintf("%d", values[i])
			if i == a.exportCursor {
				marker = "▶"
				if a.exportInput != "" {
					text = a.exportInput + "▌"
				}
			}
			out += fmt.Sprintf("%s %-7s %s\n", marker, labels[i]+":", text)
		}
		out += "[enter] Generate  [esc] Cancel"
		return out
	default:
		return ""
	}
}

func (a *App) renderOwnerForm() string {
	f := a.form
	title := "New Sales Person"
	if f.id != "" {
		title = "Edit Sales Person"
	}
	out := titleStyle.Render(title) + "\n"
	for i, label := range ownerFormLabels {
		marker := " "
		if i == f.cursor {
			marker = "▶"
		}
		line := fmt.Sprintf("%s %-12s %s", marker, label+":", f.fields[i])
		if i == f.cursor {
			line += "▌"
		}
		if msg := f.errors[ownerFormKeys[i]]; msg != "" {
			line += "  " + errorStyle.Render(msg)
		}
		out += line + "\n"
	}
	out += "[enter] Save  [esc] Cancel"
	return out
}

func (a *App) ownerLabel(id string) string {
	if id == "" {
		return "[unassigned]"
	}
	if o, ok := a.owners.Get(id); ok {
		return o.DisplayName()
	}
	// imported reference that resolves to nothing renders as unassigned,
	// but the raw value stays on the region
	return "[unassigned]"
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}
