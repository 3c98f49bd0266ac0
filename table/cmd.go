package table

import (
	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"vignette/message"
)

func (pnl TablePanel) selectedCmd() tea.Cmd {
	return message.SelectedCmd(pnl.selected)
}

func (pnl TablePanel) loadCmd() tea.Cmd {

	if pnl.selected < 0 || pnl.selected >= len(pnl.rows) {
		return message.ErrorCmd(errors.Errorf("no row selected"))
	}
	return message.LoadCmd(pnl.selected)
}
