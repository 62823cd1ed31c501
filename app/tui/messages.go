package tui

import (
	"newslens/app/config"
)

// loadDoneMsg reports a finished feed load, translation included.
type loadDoneMsg struct {
	err error
}

// translateDoneMsg reports a finished locale-switch translation.
type translateDoneMsg struct {
	err error
}

// progressMsg carries one translation progress update.
type progressMsg struct {
	percent int
}

// progressDoneMsg signals that the progress channel was closed.
type progressDoneMsg struct{}

type configLoadedMsg struct {
	cfg config.Config
	err error
}

type presetLoadedMsg struct {
	cfg config.Config
	err error
}

type configSavedMsg struct {
	err error
}

type urlOpenedMsg struct {
	err error
}
