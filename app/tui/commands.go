package tui

import (
	"context"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"newslens/app/client"
	"newslens/app/config"
	"newslens/app/loader"
	"newslens/app/translate"
)

// loadFeed runs a full load (fetch plus translation when the locale needs
// it) and closes the progress channel when done.
func loadFeed(l *loader.Loader, force bool, progress chan int) tea.Cmd {
	return func() tea.Msg {
		err := l.Load(context.Background(), force, progressSink(progress))
		close(progress)
		return loadDoneMsg{err: err}
	}
}

// translateFeed re-derives the display snapshot for the current locale.
func translateFeed(l *loader.Loader, progress chan int) tea.Cmd {
	return func() tea.Msg {
		err := l.Translate(context.Background(), progressSink(progress))
		close(progress)
		return translateDoneMsg{err: err}
	}
}

// progressSink forwards batch progress into the channel without ever
// blocking the translation goroutine.
func progressSink(ch chan<- int) translate.ProgressFunc {
	return func(percent int) {
		select {
		case ch <- percent:
		default:
		}
	}
}

// waitForProgress delivers the next progress update as a message. The
// update handler re-issues it until the channel closes.
func waitForProgress(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		percent, ok := <-ch
		if !ok {
			return progressDoneMsg{}
		}
		return progressMsg{percent: percent}
	}
}

func loadConfig(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		cfg, err := c.GetConfig(context.Background())
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

func loadPreset(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		cfg, err := c.GetPreset(context.Background())
		return presetLoadedMsg{cfg: cfg, err: err}
	}
}

func saveConfig(c *client.Client, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{err: c.SaveConfig(context.Background(), cfg)}
	}
}

// openURL opens a link in the system browser.
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		return urlOpenedMsg{err: cmd.Start()}
	}
}
