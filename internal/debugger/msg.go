package debugger

// Messages understood by the debugger. Application messages reach it wrapped
// in UserMsg.
type (
	// NoOp redraws without changing anything.
	NoOp struct{}
	// Up selects the previous history entry.
	Up struct{}
	// Down selects the next history entry; moving past the last resumes.
	Down struct{}
	// Resume selects the latest entry and unblocks the application.
	Resume struct{}
	// Open requests the popout.
	Open struct{}
	// Toggle expands or collapses the node at Path in the details panel.
	Toggle struct{ Path []int }
	// Jump selects the entry at Index.
	Jump struct{ Index int }
	// Export saves the history.
	Export struct{}
	// Import replaces the history with the file at Path. An empty path is a
	// cancelled pick.
	Import struct{ Path string }
	// Dismiss hides a blocking message.
	Dismiss struct{}

	// UserMsg is a message of the debugged application.
	UserMsg struct{ Msg any }

	exported struct {
		path string
		err  error
	}
	uploaded struct {
		data []byte
		err  error
	}
)
