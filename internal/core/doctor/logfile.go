package doctor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/colonyops/toasty/pkg/logutils"
)

// LogFileCheck verifies the log destination is writable.
type LogFileCheck struct {
	path string
}

func NewLogFileCheck(path string) *LogFileCheck {
	return &LogFileCheck{path: path}
}

func (c *LogFileCheck) Name() string {
	return "Logging"
}

func (c *LogFileCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch c.path {
	case "":
		result.add(StatusWarn, "log file", "disabled, logs are discarded")
		return result
	case logutils.Stderr:
		result.add(StatusPass, "log file", "stderr (held while the TUI is open)")
		return result
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		result.add(StatusFail, "log dir", err.Error())
		return result
	}

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		result.add(StatusFail, "log file", err.Error())
		return result
	}
	_ = f.Close()

	result.add(StatusPass, "log file", c.path)
	return result
}
