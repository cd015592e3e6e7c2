package preview

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Opener shows a URL or file in an external viewer.
type Opener func(target string) error

// OpenBrowser opens target in the default web browser. Local paths are
// turned into file URLs.
func OpenBrowser(target string) error {
	if !strings.Contains(target, "://") {
		target = "file://" + target
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	return cmd.Start()
}
