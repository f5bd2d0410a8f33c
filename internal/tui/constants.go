package tui

import "time"

// UI Layout Constants

const (
	BorderSize         = 2 // top + bottom (or left + right) border
	BoxTitleLines      = 1 // section tab line inside each box
	TabBarLines        = 1
	FooterLines        = 1
	URLBoxHeight       = 3 // border + one line
	MethodBoxWidth     = 11
	MinRequestHeight   = 6
	RequestHeightRatio = 0.4 // share of the space below the URL given to the request box

	HistoryTimeFormat = "2006-01-02 15:04:05"
)

const (
	// MaxFooterMessage is where status and error messages are truncated.
	MaxFooterMessage = 100

	// StatusTimeout clears status messages. Errors stay until replaced.
	StatusTimeout = 4 * time.Second
)
