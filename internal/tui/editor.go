package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"salesmap/internal/catalog"
	"salesmap/internal/model"
	"salesmap/internal/selection"
)

// colorPalette is the set of display colors a region can cycle through.
var colorPalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#008080", "#9a6324",
}

type editorFocus int

const (
	focusName editorFocus = iota
	focusColor
	focusAvailable
	focusChosen
)

// editorState is the transient state of one region edit session. The
// selection view lives exactly as long as the session; its chosen set is
// folded into the draft on commit.
type editorState struct {
	sel       *selection.View
	focus     editorFocus
	cursor    [2]int
	filtering bool
	errors    map[string]string
}

func newEditorState(chosen []string) *editorState {
	return &editorState{
		sel: selection.New(catalog.All(), chosen),
	}
}

func (a *App) openEditorNew() {
	draft := a.regions.StartDraft()
	a.editor = newEditorState(draft.Territories)
	a.state = viewEditor
	a.status = ""
}

func (a *App) openEditorExisting(index int) tea.Cmd {
	draft, err := a.regions.StartEditDraft(index)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	a.editor = newEditorState(draft.Territories)
	a.state = viewEditor
	a.status = ""
	return nil
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := a.editor
	draft := a.regions.Draft()
	if ed == nil || draft == nil {
		a.state = viewRegions
		return a, nil
	}

	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+s":
		return a.commitEditor()
	case "esc":
		if ed.filtering {
			ed.filtering = false
			return a, nil
		}
		a.regions.CancelDraft()
		a.editor = nil
		a.state = viewRegions
		a.status = "edit canceled"
		return a, nil
	case "tab":
		ed.filtering = false
		ed.focus = (ed.focus + 1) % 4
		return a, nil
	case "shift+tab":
		ed.filtering = false
		ed.focus = (ed.focus + 3) % 4
		return a, nil
	}

	switch ed.focus {
	case focusName:
		a.handleNameInput(m, draft)
	case focusColor:
		a.handleColorInput(m, draft)
	case focusAvailable:
		return a.handlePaneKey(m, selection.SideAvailable)
	case focusChosen:
		return a.handlePaneKey(m, selection.SideChosen)
	}
	return a, nil
}

func (a *App) handleNameInput(m tea.KeyMsg, draft *model.Region) {
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(draft.Name) > 0 {
			draft.Name = draft.Name[:len(draft.Name)-1]
		}
	case tea.KeySpace:
		draft.Name += " "
	case tea.KeyRunes:
		draft.Name += string(m.Runes)
	}
}

func (a *App) handleColorInput(m tea.KeyMsg, draft *model.Region) {
	idx := -1
	for i, c := range colorPalette {
		if c == draft.Color {
			idx = i
			break
		}
	}
	switch m.String() {
	case "left", "h":
		if idx <= 0 {
			idx = len(colorPalette) - 1
		} else {
			idx--
		}
		draft.Color = colorPalette[idx]
	case "right", "l", " ", "enter":
		idx = (idx + 1) % len(colorPalette)
		draft.Color = colorPalette[idx]
	case "backspace", "delete":
		draft.Color = model.ColorUnset
	}
}

func (a *App) handlePaneKey(m tea.KeyMsg, side selection.Side) (tea.Model, tea.Cmd) {
	ed := a.editor
	if ed.filtering {
		switch m.Type {
		case tea.KeyEnter:
			ed.filtering = false
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			q := ed.sel.Query(side)
			if len(q) > 0 {
				ed.sel.SetQuery(side, q[:len(q)-1])
				ed.clampCursor(side)
			}
		case tea.KeySpace:
			ed.sel.SetQuery(side, ed.sel.Query(side)+" ")
			ed.clampCursor(side)
		case tea.KeyRunes:
			ed.sel.SetQuery(side, ed.sel.Query(side)+string(m.Runes))
			ed.clampCursor(side)
		}
		return a, nil
	}

	visible := ed.sel.Visible(side)
	switch m.String() {
	case "up", "k":
		if ed.cursor[side] > 0 {
			ed.cursor[side]--
		}
	case "down", "j":
		if ed.cursor[side] < len(visible)-1 {
			ed.cursor[side]++
		}
	case " ":
		if len(visible) > 0 && ed.cursor[side] < len(visible) {
			ed.sel.ToggleHighlight(side, visible[ed.cursor[side]])
		}
	case "/":
		ed.filtering = true
	case "enter", "m":
		if side == selection.SideAvailable {
			ed.sel.MoveToChosen()
		} else {
			ed.sel.MoveToAvailable()
		}
		ed.clampCursor(selection.SideAvailable)
		ed.clampCursor(selection.SideChosen)
	case "o":
		a.modal = modalOwnerPicker
		a.pickerCursor = 0
	}
	return a, nil
}

func (e *editorState) clampCursor(side selection.Side) {
	n := len(e.sel.Visible(side))
	if n == 0 {
		e.cursor[side] = 0
		return
	}
	if e.cursor[side] >= n {
		e.cursor[side] = n - 1
	}
}

func (a *App) commitEditor() (tea.Model, tea.Cmd) {
	draft := a.regions.Draft()
	if draft == nil {
		a.editor = nil
		a.state = viewRegions
		return a, nil
	}
	draft.Territories = a.editor.sel.Chosen()
	if err := a.regions.CommitDraft(); err != nil {
		if ve, ok := model.AsValidation(err); ok {
			a.editor.errors = ve.Fields
			a.status = ve.Error()
			return a, nil
		}
		a.status = "error: " + err.Error()
		return a, nil
	}
	a.editor = nil
	a.state = viewRegions
	a.clampCursors()
	a.status = "region saved"
	return a, a.saveCmd()
}

func (a *App) handleOwnerPickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	owners := a.owners.List()
	switch m.String() {
	case "esc":
		a.modal = modalNone
	case "up", "k":
		if a.pickerCursor > 0 {
			a.pickerCursor--
		}
	case "down", "j":
		if a.pickerCursor < len(owners)-1 {
			a.pickerCursor++
		}
	case "enter":
		a.modal = modalNone
		draft := a.regions.Draft()
		if draft == nil || len(owners) == 0 {
			return a, nil
		}
		draft.OwnerID = owners[a.pickerCursor].ID
		if ed := a.editor; ed != nil {
			delete(ed.errors, "owner")
		}
	}
	return a, nil
}

// ownerForm is the add/edit modal for a sales person. id == "" means add.
type ownerForm struct {
	id     string
	fields [4]string
	cursor int
	errors map[string]string
}

var ownerFormLabels = [4]string{"First name", "Last name", "Email", "Phone"}

var ownerFormKeys = [4]string{"firstName", "lastName", "email", "phone"}

func (a *App) openOwnerForm(existing *model.Owner) {
	f := &ownerForm{}
	if existing != nil {
		f.id = existing.ID
		f.fields = [4]string{existing.FirstName, existing.LastName, existing.Email, existing.Phone}
	}
	a.form = f
	a.modal = modalOwnerForm
}

func (a *App) handleOwnerFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.form
	switch m.String() {
	case "esc":
		a.modal = modalNone
		a.form = nil
		return a, nil
	case "up", "shift+tab":
		if f.cursor > 0 {
			f.cursor--
		}
		return a, nil
	case "down", "tab":
		if f.cursor < len(f.fields)-1 {
			f.cursor++
		}
		return a, nil
	}
	switch m.Type {
	case tea.KeyEnter:
		return a.submitOwnerForm()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(f.fields[f.cursor]) > 0 {
			f.fields[f.cursor] = f.fields[f.cursor][:len(f.fields[f.cursor])-1]
		}
	case tea.KeySpace:
		f.fields[f.cursor] += " "
	case tea.KeyRunes:
		f.fields[f.cursor] += string(m.Runes)
	}
	return a, nil
}

func (a *App) submitOwnerForm() (tea.Model, tea.Cmd) {
	f := a.form
	fields := model.OwnerFields{
		FirstName: f.fields[0],
		LastName:  f.fields[1],
		Email:     f.fields[2],
		Phone:     f.fields[3],
	}
	var err error
	if f.id == "" {
		_, err = a.owners.Add(fields)
	} else {
		_, err = a.owners.Edit(f.id, fields)
	}
	if err != nil {
		if ve, ok := model.AsValidation(err); ok {
			f.errors = ve.Fields
			return a, nil
		}
		a.modal = modalNone
		a.form = nil
		a.status = "error: " + err.Error()
		return a, nil
	}
	a.modal = modalNone
	a.form = nil
	if f.id == "" {
		a.status = "sales person added"
	} else {
		a.status = "sales person updated"
	}
	return a, a.saveCmd()
}

func (a *App) handleExportKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "up", "k":
		a.commitExportInput()
		if a.exportCursor > 0 {
			a.exportCursor--
		}
		return a, nil
	case "down", "j", "tab":
		a.commitExportInput()
		if a.exportCursor < 2 {
			a.exportCursor++
		}
		return a, nil
	case "enter":
		a.commitExportInput()
		a.modal = modalNone
		a.status = "generating map..."
		return a, a.generateCmd()
	case "backspace":
		if len(a.exportInput) > 0 {
			a.exportInput = a.exportInput[:len(a.exportInput)-1]
		}
		return a, nil
	}
	if m.Type == tea.KeyRunes {
		for _, r := range m.Runes {
			if r >= '0' && r <= '9' {
				a.exportInput += string(r)
			}
		}
	}
	return a, nil
}

// commitExportInput folds typed digits into the selected sizing field.
// Empty input keeps the current value.
func (a *App) commitExportInput() {
	text := strings.TrimSpace(a.exportInput)
	a.exportInput = ""
	if text == "" {
		return
	}
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return
	}
	switch a.exportCursor {
	case 0:
		a.export.Width = n
	case 1:
		a.export.Height = n
	case 2:
		a.export.DPI = n
	}
}
