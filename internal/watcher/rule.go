package watcher

import (
	"errors"
	"regexp"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/utils"
)

// Checksum markers recognised at the start of a check expression
var checksumMarkers = map[string]string{
	"SHA1:":   utils.HashSHA1,
	"SHA256:": utils.HashSHA256,
}

var rulePattern = regexp.MustCompile(`^(\S+)\s+(.+)$`)

// ErrMalformedRule is returned for Watch values that are not "<url> <check>"
var ErrMalformedRule = errors.New("failed to parse Watch line")

// Rule is a parsed Watch field
type Rule struct {
	URL string

	// Algorithm and Checksum are set in checksum mode
	Algorithm string
	Checksum  string

	// Pattern is set in pattern mode
	Pattern string
}

// IsChecksum reports whether the rule compares a digest of the content
func (r Rule) IsChecksum() bool {
	return r.Algorithm != ""
}

// ParseRule splits a Watch value into URL and check expression
func ParseRule(value string) (Rule, error) {
	m := rulePattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return Rule{}, ErrMalformedRule
	}

	rule := Rule{URL: m[1]}
	check := strings.TrimSpace(m[2])

	for marker, algo := range checksumMarkers {
		if strings.HasPrefix(check, marker) {
			rule.Algorithm = algo
			rule.Checksum = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(check, marker)))
			return rule, nil
		}
	}

	rule.Pattern = check
	return rule, nil
}
