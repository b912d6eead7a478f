package ui

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/sirupsen/logrus"
)

// OpenerEnv overrides the command used to open links, e.g. "firefox --new-tab"
const OpenerEnv = "BOOKSEARCH_OPENER"

// LinkOps hands URLs to the desktop's browser
type LinkOps struct {
	command []string
}

// NewLinkOps picks the opener for this platform, honouring OpenerEnv
func NewLinkOps() *LinkOps {
	if custom := strings.Fields(os.Getenv(OpenerEnv)); len(custom) > 0 {
		return &LinkOps{command: custom}
	}

	switch runtime.GOOS {
	case "darwin":
		return &LinkOps{command: []string{"open"}}
	case "windows":
		return &LinkOps{command: []string{"rundll32", "url.dll,FileProtocolHandler"}}
	default:
		return &LinkOps{command: []string{"xdg-open"}}
	}
}

// IsAvailable checks if the opener binary can be found
func (l *LinkOps) IsAvailable() bool {
	_, err := exec.LookPath(l.command[0])
	return err == nil
}

// Open starts the opener for url without waiting for the browser
func (l *LinkOps) Open(url string) error {
	if url == "" {
		return errors.New("empty url")
	}

	args := append(append([]string{}, l.command[1:]...), url)
	cmd := exec.Command(l.command[0], args...)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start %s", l.command[0])
	}

	// Reap the child so it doesn't linger as a zombie
	go func() {
		if err := cmd.Wait(); err != nil {
			logrus.WithError(err).WithField("opener", l.command[0]).Debug("opener exited with error")
		}
	}()
	return nil
}
