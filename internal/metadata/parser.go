package metadata

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"pault.ag/go/debian/control"
)

// ErrEmptyStanza is returned when a file holds no paragraph at all
var ErrEmptyStanza = errors.New("no stanza found")

// ParseStanza reads the first paragraph of a control-style document. Later
// paragraphs are ignored.
func ParseStanza(r io.Reader) (models.Stanza, error) {
	reader, err := control.NewParagraphReader(r, nil)
	if err != nil {
		return models.Stanza{}, err
	}

	para, err := reader.Next()
	if err == io.EOF {
		return models.Stanza{}, ErrEmptyStanza
	}
	if err != nil {
		return models.Stanza{}, err
	}

	stanza := models.NewStanza()
	for _, key := range para.Order {
		stanza.Set(key, normalizeValue(para.Values[key]))
	}
	if stanza.Len() == 0 {
		return models.Stanza{}, ErrEmptyStanza
	}

	return stanza, nil
}

// normalizeValue trims the value's first line and trailing whitespace.
// Continuation lines keep any indentation beyond the single leading space
// already removed by the paragraph reader, so verbatim lines survive. Empty
// continuation lines become ".".
func normalizeValue(value string) string {
	lines := strings.Split(strings.TrimRight(value, "\r\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = strings.TrimSpace(line)
			continue
		}
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			line = "."
		}
		lines[i] = line
	}
	return strings.TrimPrefix(strings.Join(lines, "\n"), "\n")
}

// Validate checks that every field of stanza is in the allow-list
func Validate(stanza models.Stanza, allowed []string) error {
	for _, key := range stanza.Order {
		if !contains(allowed, key) {
			return fmt.Errorf("unknown field %q, allowed fields: %s", key, strings.Join(allowed, ", "))
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
