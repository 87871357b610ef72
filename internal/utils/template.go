package utils

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
)

var placeholderPattern = regexp.MustCompile(`#AUTO_UPDATE_[A-Za-z0-9-]+#`)

// Placeholder returns the template token for field
func Placeholder(field string) string {
	return "#AUTO_UPDATE_" + field + "#"
}

// Template is a text document with #AUTO_UPDATE_<Field># tokens
type Template struct {
	Name string
	Text string
}

// LoadTemplate reads a template file
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.HelperError{
			Type:  models.ErrFileOp,
			Field: path,
			Err:   fmt.Errorf("failed to read template: %w", err),
		}
	}
	return &Template{Name: path, Text: string(data)}, nil
}

// Render substitutes every field in values. Each field's token must occur
// exactly once, and the template may not contain tokens that have no value.
func (t *Template) Render(values map[string]string) (string, error) {
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	pairs := make([]string, 0, 2*len(fields))
	for _, field := range fields {
		token := Placeholder(field)
		switch n := strings.Count(t.Text, token); n {
		case 1:
		case 0:
			return "", t.errorf("placeholder %s not found", token)
		default:
			return "", t.errorf("placeholder %s found %d times, expected once", token, n)
		}
		pairs = append(pairs, token, values[field])
	}

	for _, token := range placeholderPattern.FindAllString(t.Text, -1) {
		field := strings.TrimSuffix(strings.TrimPrefix(token, "#AUTO_UPDATE_"), "#")
		if _, ok := values[field]; !ok {
			return "", t.errorf("placeholder %s has no value", token)
		}
	}

	// A single pass never rescans substituted values
	return strings.NewReplacer(pairs...).Replace(t.Text), nil
}

func (t *Template) errorf(format string, args ...interface{}) error {
	return &models.HelperError{
		Type:  models.ErrTemplate,
		Field: t.Name,
		Err:   fmt.Errorf(format, args...),
	}
}
