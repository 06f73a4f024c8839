package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"salesmap/internal/config"
	"salesmap/internal/exchange"
	"salesmap/internal/mapclient"
	"salesmap/internal/model"
	"salesmap/internal/service"
)

// App ties together views over the workspace.
type App struct {
	ctx       context.Context
	cfg       config.Config
	client    *mapclient.Client
	workspace *service.WorkspaceService

	owners  *model.OwnerRegistry
	regions *model.RegionStore

	state appState
	modal modalState
	keys  keyMap

	regionCursor int
	ownerCursor  int
	pickerCursor int
	status       string
	width        int
	height       int

	editor *editorState

	// owner form modal
	form *ownerForm
	// owner/region pending confirm-delete
	deleteOwnerID    string
	deleteRegionIdx  int
	// import modal input
	importPath string
	// export settings modal
	export       mapclient.ExportSettings
	exportCursor int
	exportInput  string
}

type appState string

const (
	viewRegions appState = "regions"
	viewOwners  appState = "owners"
	viewEditor  appState = "editor"
)

type modalState string

const (
	modalNone          modalState = ""
	modalOwnerForm     modalState = "ownerForm"
	modalConfirmOwner  modalState = "confirmDeleteOwner"
	modalConfirmRegion modalState = "confirmDeleteRegion"
	modalOwnerPicker   modalState = "ownerPicker"
	modalImport        modalState = "import"
	modalExport        modalState = "export"
)

func New(ctx context.Context, cfg config.Config, client *mapclient.Client, workspace *service.WorkspaceService) *App {
	return &App{
		ctx:       ctx,
		cfg:       cfg,
		client:    client,
		workspace: workspace,
		owners:    model.NewOwnerRegistry(),
		regions:   model.NewRegionStore(),
		state:     viewRegions,
		keys:      newKeyMap(),
		export: mapclient.ExportSettings{
			Width:  cfg.Export.Width,
			Height: cfg.Export.Height,
			DPI:    cfg.Export.DPI,
		},
		importPath: "regions_export.json",
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadWorkspace()
}

// messages

type workspaceLoadedMsg struct {
	owners  []model.Owner
	regions []model.Region
}

type savedMsg struct{}

type generateDoneMsg struct{ path string }

type exportDoneMsg struct{ path string }

type importDoneMsg struct{ result service.ImportResult }

type statusMsg string

type errMsg struct{ error }

// commands

func (a *App) loadWorkspace() tea.Cmd {
	return func() tea.Msg {
		owners, regions, err := a.workspace.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return workspaceLoadedMsg{owners: owners, regions: regions}
	}
}

// saveCmd snapshots the workspace after a committed mutation. Failures are
// surfaced but do not roll anything back; the model stays authoritative.
func (a *App) saveCmd() tea.Cmd {
	owners := a.owners.List()
	regions := a.regions.List()
	return func() tea.Msg {
		if err := a.workspace.Save(a.ctx, owners, regions); err != nil {
			return errMsg{fmt.Errorf("autosave: %w", err)}
		}
		return savedMsg{}
	}
}

func (a *App) generateCmd() tea.Cmd {
	req := mapclient.BuildGenerateRequest(a.regions.List(), a.owners, a.export)
	outDir := a.cfg.Export.OutputDir
	return func() tea.Msg {
		// availability probe; outcome deliberately not inspected
		_ = a.client.Probe(a.ctx)
		art, err := a.client.GenerateMap(a.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		path, err := writeArtifact(outDir, art)
		if err != nil {
			return errMsg{err}
		}
		return generateDoneMsg{path: path}
	}
}

func (a *App) exportCmd() tea.Cmd {
	doc := exchange.FromModel(a.owners.List(), a.regions.List())
	outDir := a.cfg.Export.OutputDir
	return func() tea.Msg {
		art, err := a.client.ExportRegions(a.ctx, doc)
		if err != nil {
			return errMsg{err}
		}
		path, err := writeArtifact(outDir, art)
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{path: path}
	}
}

func (a *App) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return errMsg{fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()
		doc, err := a.client.ImportRegions(a.ctx, filepath.Base(path), f)
		if err != nil {
			return errMsg{err}
		}
		return importDoneMsg{result: service.ResolveImport(doc)}
	}
}

func writeArtifact(dir string, art mapclient.Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir output dir: %w", err)
	}
	path := filepath.Join(dir, art.Filename)
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.state == viewEditor {
			return a.handleEditorKey(m)
		}
		return a.handleListKey(m)
	case workspaceLoadedMsg:
		a.owners.Replace(m.owners)
		a.regions.Replace(m.regions)
		a.clampCursors()
		if len(m.regions) > 0 || len(m.owners) > 0 {
			a.status = fmt.Sprintf("restored %d regions, %d sales people", len(m.regions), len(m.owners))
		}
		return a, nil
	case savedMsg:
		return a, nil
	case generateDoneMsg:
		a.status = "map saved to " + m.path
		return a, nil
	case exportDoneMsg:
		a.status = "exported to " + m.path
		return a, nil
	case importDoneMsg:
		a.owners.Replace(m.result.Owners)
		a.regions.Replace(m.result.Regions)
		a.editor = nil
		a.state = viewRegions
		a.clampCursors()
		a.status = importSummary(m.result)
		return a, a.saveCmd()
	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil
	}
	return a, nil
}

func importSummary(res service.ImportResult) string {
	s := fmt.Sprintf("imported %d regions, %d sales people", len(res.Regions), len(res.Owners))
	if len(res.Dropped) == 0 {
		return s
	}
	first := res.Dropped[0]
	s += fmt.Sprintf("; dropped %d unknown territories (%q", len(res.Dropped), first.Name)
	if first.Suggestion != "" {
		s += fmt.Sprintf(", did you mean %q", first.Suggestion)
	}
	s += ")"
	return s
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		if a.state == viewRegions {
			a.state = viewOwners
		} else {
			a.state = viewRegions
		}
		return a, nil
	case "up", "k":
		if a.state == viewRegions && a.regionCursor > 0 {
			a.regionCursor--
		}
		if a.state == viewOwners && a.ownerCursor > 0 {
			a.ownerCursor--
		}
	case "down", "j":
		if a.state == viewRegions && a.regionCursor < a.regions.Len()-1 {
			a.regionCursor++
		}
		if a.state == viewOwners && a.ownerCursor < a.owners.Len()-1 {
			a.ownerCursor++
		}
	case "n":
		if a.state == viewRegions {
			a.openEditorNew()
		} else {
			a.openOwnerForm(nil)
		}
		return a, nil
	case "enter":
		if a.state == viewRegions {
			if a.regions.Len() == 0 {
				a.status = "no regions yet - press n to create one"
				return a, nil
			}
			return a, a.openEditorExisting(a.regionCursor)
		}
		if a.owners.Len() == 0 {
			a.status = "no sales people yet - press n to add one"
			return a, nil
		}
		owner := a.owners.List()[a.ownerCursor]
		a.openOwnerForm(&owner)
		return a, nil
	case "backspace", "delete", "x":
		if a.state == viewRegions {
			if a.regions.Len() == 0 {
				return a, nil
			}
			a.deleteRegionIdx = a.regionCursor
			a.modal = modalConfirmRegion
			return a, nil
		}
		if a.owners.Len() == 0 {
			return a, nil
		}
		a.deleteOwnerID = a.owners.List()[a.ownerCursor].ID
		a.modal = modalConfirmOwner
		return a, nil
	case "g":
		if a.regions.Len() == 0 {
			a.status = "nothing to render - create a region first"
			return a, nil
		}
		a.modal = modalExport
		a.exportCursor = 0
		a.exportInput = ""
		return a, nil
	case "e":
		a.status = "exporting..."
		return a, a.exportCmd()
	case "i":
		a.modal = modalImport
		return a, nil
	}
	return a, nil
}

func (a *App) clampCursors() {
	if a.regionCursor >= a.regions.Len() {
		a.regionCursor = 0
	}
	if a.ownerCursor >= a.owners.Len() {
		a.ownerCursor = 0
	}
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalOwnerForm:
		return a.handleOwnerFormKey(m)
	case modalOwnerPicker:
		return a.handleOwnerPickerKey(m)
	case modalConfirmOwner:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			id := a.deleteOwnerID
			a.deleteOwnerID = ""
			// cascade: regions referencing the owner drop their assignment,
			// draft included, inside the same call
			if err := a.owners.Remove(id, a.regions); err != nil {
				a.status = "error: " + err.Error()
				return a, nil
			}
			a.clampCursors()
			a.status = "sales person removed"
			return a, a.saveCmd()
		case "n", "N", "esc":
			a.modal = modalNone
			a.deleteOwnerID = ""
		}
	case modalConfirmRegion:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			if err := a.regions.Remove(a.deleteRegionIdx); err != nil {
				a.status = "error: " + err.Error()
				return a, nil
			}
			if a.regions.DraftState() == model.DraftNone {
				a.editor = nil
			}
			a.clampCursors()
			a.status = "region removed"
			return a, a.saveCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalImport:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
		case tea.KeyEnter:
			path := strings.TrimSpace(a.importPath)
			if path == "" {
				a.status = "enter a document path"
				return a, nil
			}
			a.modal = modalNone
			a.status = "importing..."
			return a, a.importCmd(path)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.importPath) > 0 {
				a.importPath = a.importPath[:len(a.importPath)-1]
			}
		case tea.KeySpace:
			a.importPath += " "
		case tea.KeyRunes:
			a.importPath += string(m.Runes)
		}
	case modalExport:
		return a.handleExportKey(m)
	}
	return a, nil
}
