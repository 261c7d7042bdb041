package tui

import "github.com/MarcinSonic/TheNewsApp/internal/feed"

// articlesLoadedMsg carries the result of load number seq.
type articlesLoadedMsg struct {
	seq    int
	result feed.Result
}

type errMsg struct {
	err error
}

type updateAvailableMsg struct {
	version string
}
