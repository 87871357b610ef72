package watcher

import (
	"fmt"
	"io"
)

// Status of a single plugin check
type Status int

const (
	StatusOK Status = iota
	StatusUpdate
	StatusWarning
)

// String returns the string representation of Status
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusUpdate:
		return "UPDATE NECESSARY"
	case StatusWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Report is the advisory outcome of checking one plugin
type Report struct {
	Plugin  string
	Status  Status
	Message string

	// Found is the upstream version or checksum that was discovered
	Found string
}

// String renders the report as a console line
func (r Report) String() string {
	if r.Message == "" {
		return fmt.Sprintf("%s: %s", r.Status, r.Plugin)
	}
	return fmt.Sprintf("%s: %s - %s", r.Status, r.Plugin, r.Message)
}

func ok(plugin string) Report {
	return Report{Plugin: plugin, Status: StatusOK}
}

func update(plugin, found, format string, args ...interface{}) Report {
	return Report{Plugin: plugin, Status: StatusUpdate, Found: found, Message: fmt.Sprintf(format, args...)}
}

func warning(plugin, format string, args ...interface{}) Report {
	return Report{Plugin: plugin, Status: StatusWarning, Message: fmt.Sprintf(format, args...)}
}

// Print writes one line per report
func Print(w io.Writer, reports []Report) error {
	for _, r := range reports {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}
