package message

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// SelectedMsg signals the selected row changed
type SelectedMsg struct {
	Row int
}

// LoadMsg signals a row's load button was pressed
type LoadMsg struct {
	Row int
}

// LoadAllMsg signals the load all button was pressed
type LoadAllMsg struct{}

// FetchedMsg signals a row's fetch completed
type FetchedMsg struct {
	Row int
	Ok  bool
}
