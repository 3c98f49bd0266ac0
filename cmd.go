package vignette

import (
	tea "charm.land/bubbletea/v2"

	nt "vignette/entity"
	"vignette/message"
	"vignette/row"
	"vignette/table"
)

// waitCmd waits for a row's pending result
func waitCmd(idx int, pending <-chan nt.Result) tea.Cmd {

	return func() tea.Msg {
		result := <-pending
		return message.FetchedMsg{Row: idx, Ok: result.Ok()}
	}
}

// reloadRows closes the current rows and builds them anew from the store
func (m Model) reloadRows() (Model, tea.Cmd) {

	rows, err := row.Build(m.Store, m.fetcher, m.logger)
	if err != nil {
		return m, message.ErrorCmd(err)
	}

	m.rows.Close()
	m.rows = rows
	m.Selected = 0

	var cmd tea.Cmd
	m.TablePanel, cmd = m.TablePanel.Update(table.ResetMsg{})
	return m.refresh(cmd)
}
