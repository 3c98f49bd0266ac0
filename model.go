package vignette

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"vignette/detail"
	nt "vignette/entity"
	"vignette/message"
	"vignette/row"
	"vignette/table"
)

const (
	footerHeight = 2
)

// Model is the bubbletea model for the image rows TUI.
type Model struct {
	Store       Store
	Layout      Layout
	fetcher     row.Fetcher
	rows        *row.Rows
	logger      nt.Logger
	ctx         context.Context
	errorString string

	CurrentScreen Screen

	Snaps    []row.Snapshot
	Selected int

	TablePanel  table.TablePanel
	DetailPanel detail.DetailPanel

	Width  int
	Height int
}

// NewModel creates a new bt model with a row per url in store.
func NewModel(ctx context.Context, store Store, ftr row.Fetcher, layout *Layout, lgr nt.Logger) (model Model, err error) {

	rows, err := row.Build(store, ftr, lgr)
	if err != nil {
		return
	}

	lyt := layout.withDefaults()

	model = Model{
		Store:         store,
		Layout:        lyt,
		fetcher:       ftr,
		rows:          rows,
		logger:        lgr,
		ctx:           ctx,
		CurrentScreen: TableScreen,
		TablePanel:    table.NewTablePanel(lyt.ThumbWidth, lyt.ThumbHeight, lyt.UrlWidth),
		DetailPanel:   detail.NewDetailPanel(lyt.DetailWidth, lyt.DetailHeight),
	}

	model, _ = model.refresh()
	return
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.LoadMsg:
		pending, err := m.rows.Trigger(m.ctx, msg.Row)
		if err != nil {
			return m, message.ErrorCmd(err)
		}
		return m.refresh(waitCmd(msg.Row, pending))

	case message.LoadAllMsg:
		var cmds []tea.Cmd
		for idx, pending := range m.rows.LoadAll(m.ctx) {
			cmds = append(cmds, waitCmd(idx, pending))
		}
		return m.refresh(cmds...)

	case message.FetchedMsg:
		return m.refresh()

	case message.SelectedMsg:
		m.Selected = msg.Row
		return m.refresh()

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case tea.KeyPressMsg:
		if m.errorString != "" {
			m.errorString = ""
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.CurrentScreen != TableScreen {
				m.CurrentScreen = TableScreen
				return m, nil
			}
			return m, tea.Quit

		case "a":
			return m, message.LoadAllCmd

		case "r":
			return m.reloadRows()

		case "right", "l":
			if m.CurrentScreen == TableScreen {
				m.CurrentScreen = DetailScreen
				return m, nil
			}

		case "left", "h":
			if m.CurrentScreen == DetailScreen {
				m.CurrentScreen = TableScreen
				return m, nil
			}
		}

		// Keys go to the panel on screen only
		var cmd tea.Cmd
		switch m.CurrentScreen {
		case DetailScreen:
			m.DetailPanel, cmd = m.DetailPanel.Update(msg)
		default:
			m.TablePanel, cmd = m.TablePanel.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		var cmd1, cmd2 tea.Cmd
		m.TablePanel, cmd1 = m.TablePanel.Update(table.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		m.DetailPanel, cmd2 = m.DetailPanel.Update(detail.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		return m, tea.Sequence(cmd1, cmd2)
	}

	var cmd1, cmd2 tea.Cmd
	m.TablePanel, cmd1 = m.TablePanel.Update(msg)
	m.DetailPanel, cmd2 = m.DetailPanel.Update(msg)
	return m, tea.Sequence(cmd1, cmd2)
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	var screenContent string
	switch m.CurrentScreen {
	case DetailScreen:
		screenContent = m.DetailPanel.View().Content
	default:
		screenContent = m.TablePanel.View().Content
	}

	screenLayer := lipgloss.NewLayer(screenContent)

	footerContent := RenderFooter(m.Selected+1, len(m.Snaps), m.Snaps, m.Store.Name(), m.Width)
	if m.errorString != "" {
		footerContent = m.errorString
	}
	footerLayer := lipgloss.NewLayer(footerContent).Y(m.Height - footerHeight)

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(screenLayer)
	canvas.Compose(footerLayer)

	view := tea.NewView(canvas.Render())
	view.AltScreen = true
	return view
}

// Close closes the rows, dropping any results still in flight
func (m Model) Close() {

	m.rows.Close()
}

// unexported

// refresh reads row snapshots and hands them to the panels
func (m Model) refresh(cmds ...tea.Cmd) (Model, tea.Cmd) {

	m.Snaps = m.rows.Snapshots()

	var cmd tea.Cmd
	m.TablePanel, cmd = m.TablePanel.Update(table.RowsMsg{Rows: m.Snaps})
	cmds = append(cmds, cmd)

	if m.Selected >= 0 && m.Selected < len(m.Snaps) {
		m.DetailPanel, cmd = m.DetailPanel.Update(detail.RowMsg{Row: m.Snaps[m.Selected]})
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
