package controller

import (
	"github.com/voidarchive/archive/core"
)

// NavigateOption carries a navigation payload key; only its presence matters
type NavigateOption func(*navigation)

type navigation struct {
	hasCharacter bool
	character    *core.Character
	hasLog       bool
	log          *core.ArchiveLog
	hasFrom      bool
	from         core.View
}

// WithCharacter selects a character; nil clears the selection
func WithCharacter(character *core.Character) NavigateOption {
	return func(n *navigation) {
		n.hasCharacter = true
		n.character = character
	}
}

// WithLog selects a log; nil clears the selection
func WithLog(log *core.ArchiveLog) NavigateOption {
	return func(n *navigation) {
		n.hasLog = true
		n.log = log
	}
}

// From records the navigation source; core.ViewNone clears it
func From(view core.View) NavigateOption {
	return func(n *navigation) {
		n.hasFrom = true
		n.from = view
	}
}
