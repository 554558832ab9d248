// Package browser opens URLs in the user's web browser.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedPlatform is returned when no opener is known for the OS.
var ErrUnsupportedPlatform = errors.New("no browser opener for this platform")

// Opener opens URLs in new browser tabs.
type Opener struct {
	command []string
	start   func(name string, args ...string) error
}

// New returns an Opener. An empty command selects the platform default;
// otherwise command is split on spaces and the URL is appended.
func New(command string) *Opener {
	return &Opener{command: strings.Fields(command), start: startCmd}
}

// Open starts the opener for url without waiting for the browser.
func (o *Opener) Open(url string) error {
	argv := o.command
	if len(argv) == 0 {
		argv = platformCommand(runtime.GOOS)
	}
	if len(argv) == 0 {
		return ErrUnsupportedPlatform
	}

	args := append(append([]string{}, argv[1:]...), url)
	if err := o.start(argv[0], args...); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// OpenAll opens every URL in order. A failure does not stop later URLs.
func (o *Opener) OpenAll(urls []string) error {
	var errs []error
	for _, u := range urls {
		if err := o.Open(u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func platformCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	}
	return nil
}

func startCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
