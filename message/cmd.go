package message

import tea "charm.land/bubbletea/v2"

// ErrorCmd returns a command reporting err
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// SelectedCmd returns a command reporting the selected row
func SelectedCmd(row int) tea.Cmd {
	return func() tea.Msg {
		return SelectedMsg{Row: row}
	}
}

// LoadCmd returns a command pressing a row's load button
func LoadCmd(row int) tea.Cmd {
	return func() tea.Msg {
		return LoadMsg{Row: row}
	}
}

// LoadAllCmd returns a command pressing the load all button
func LoadAllCmd() tea.Msg {
	return LoadAllMsg{}
}
