package metadata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
)

// FormatStanza serializes a stanza in field order. Continuation lines are
// indented by one space and empty lines are written as " .".
func FormatStanza(stanza models.Stanza) []byte {
	var buf bytes.Buffer

	for _, key := range stanza.Order {
		lines := strings.Split(stanza.Get(key), "\n")
		fmt.Fprintf(&buf, "%s: %s\n", key, lines[0])

		for _, line := range lines[1:] {
			if line == "" {
				line = "."
			}
			fmt.Fprintf(&buf, " %s\n", line)
		}
	}

	return buf.Bytes()
}

// Reindent prefixes every line after the first with indent
func Reindent(text, indent string) string {
	return strings.ReplaceAll(text, "\n", "\n"+indent)
}
