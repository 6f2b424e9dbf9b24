package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// launchers maps a platform to the command that hands a URL to the default
// browser. Windows routes through cmd's start builtin.
var launchers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"windows": {"cmd", "/c", "start"},
}

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser opens a page in the system browser, used for the post-login
// landing page. Callers treat a failure as non-fatal.
func OpenBrowser(url string) error {
	launcher, ok := launchers[getRuntime()]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", getRuntime())
	}

	cmd := exec.Command(launcher[0], append(launcher[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
