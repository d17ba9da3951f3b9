package tui

import (
	"errors"
	"os/exec"
	"runtime"
)

var errUnsupportedPlatform = errors.New("unsupported platform")

// OSOpenCmd builds the command that opens url in the system browser.
var OSOpenCmd = func(url string) *exec.Cmd {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default:
		return nil
	}
	return exec.Command(cmd, args...) //nolint:gosec
}

func openBrowser(url string) error {
	cmd := OSOpenCmd(url)
	if cmd == nil {
		return errUnsupportedPlatform
	}
	return cmd.Start()
}
