package interview

import (
	"github.com/abhisek/mockprep/internal/session"
)

// turnView is a copy of what the screen shows for the current turn, taken
// while the screen owns the controller so View never reads the session.
type turnView struct {
	Index    int
	Total    int
	Reached  bool
	Question string
	Source   session.Source
	Answer   string
	Hint     string
	Answered int
}

// turnMsg is sent after a controller operation and the follow-up
// observation of the current turn.
type turnMsg struct {
	View     turnView
	InReport bool
	// OpErr is the operation's own error, e.g. a failed evaluation.
	OpErr error
	// GenErr is a question generation failure.
	GenErr error
}

// hintMsg carries a freshly generated hint.
type hintMsg struct {
	Hint string
	Err  error
}

// captureMsg reports a voice capture being applied.
type captureMsg struct {
	View    turnView
	Applied bool
	Err     error
}
