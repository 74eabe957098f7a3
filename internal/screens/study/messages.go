package study

import "github.com/abhisek/flashiz/internal/progress"

// sessionSavedMsg is sent when the finished session has been recorded.
type sessionSavedMsg struct {
	Result *progress.SessionResult
	Err    error
}
