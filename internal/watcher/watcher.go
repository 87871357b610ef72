package watcher

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"pault.ag/go/debian/version"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Watcher checks plugins for newer upstream releases
type Watcher struct {
	fetcher Fetcher
	workers int
}

// NewWatcher creates a watcher running at most workers fetches at once
func NewWatcher(fetcher Fetcher, workers int) *Watcher {
	if workers <= 0 {
		workers = models.DefaultWorkers
	}
	return &Watcher{fetcher: fetcher, workers: workers}
}

// Check returns one report per plugin, in plugin order
func (w *Watcher) Check(ctx context.Context, plugins []models.Plugin) []Report {
	reports := make([]Report, len(plugins))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)

	for i, plugin := range plugins {
		g.Go(func() error {
			reports[i] = w.CheckPlugin(gctx, plugin)
			return nil
		})
	}

	// Checks report problems, they never fail
	_ = g.Wait()

	return reports
}

// CheckPlugin runs the Watch rule of a single plugin
func (w *Watcher) CheckPlugin(ctx context.Context, plugin models.Plugin) Report {
	ctrl := plugin.Control
	if !ctrl.Has(models.FieldWatch) {
		return warning(plugin.Name, "missing watch information!")
	}

	rule, err := ParseRule(ctrl.Get(models.FieldWatch))
	if err != nil {
		return warning(plugin.Name, "%v!", err)
	}

	logrus.Debugf("%s: fetching %s", plugin.Name, rule.URL)
	content, err := w.fetcher.Fetch(ctx, rule.URL)
	if err != nil {
		return warning(plugin.Name, "failed to retrieve %s: %v", rule.URL, err)
	}

	if rule.IsChecksum() {
		return checkChecksum(plugin.Name, rule, content)
	}

	if !ctrl.Has(models.FieldVersion) {
		return warning(plugin.Name, "missing current version information!")
	}

	return checkPattern(plugin.Name, rule, content, strings.TrimSpace(ctrl.Get(models.FieldVersion)))
}

func checkChecksum(plugin string, rule Rule, content []byte) Report {
	sum, err := utils.CalculateChecksum(content, rule.Algorithm)
	if err != nil {
		return warning(plugin, "%v", err)
	}

	if sum != rule.Checksum {
		return update(plugin, sum, "%s checksum does not match! New checksum: %s",
			strings.ToUpper(rule.Algorithm), sum)
	}
	return ok(plugin)
}

func checkPattern(plugin string, rule Rule, content []byte, current string) Report {
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return warning(plugin, "invalid regex %q: %v", rule.Pattern, err)
	}

	if u, err := url.Parse(rule.URL); err == nil && utils.IsCompressedName(u.Path) {
		content, err = utils.Decompress(u.Path, content)
		if err != nil {
			return warning(plugin, "failed to decompress %s: %v", rule.URL, err)
		}
	}

	found := FindVersions(re, string(content))
	if len(found) == 0 {
		return warning(plugin, "regex does not match!")
	}

	newest, valid := Newest(found)
	if !valid {
		return warning(plugin, "no valid version among matches %s", strings.Join(found, ", "))
	}

	cur, err := version.Parse(current)
	if err != nil {
		return warning(plugin, "invalid current version %q: %v", current, err)
	}

	switch c := version.Compare(newest, cur); {
	case c > 0:
		return update(plugin, newest.String(), "found new version %s", newest)
	case c < 0:
		return warning(plugin, "could not find the current version (found: %s, control says: %s)!", newest, current)
	}
	return ok(plugin)
}

// FindVersions returns every match of re in content. If re has a capture
// group the first group is used. A second pass over content with whitespace
// runs replaced by newlines adds matches from patterns written with greedy
// wildcards for line-oriented pages.
func FindVersions(re *regexp.Regexp, content string) []string {
	var found []string
	seen := make(map[string]struct{})

	collect := func(text string) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v := m[0]
			if len(m) > 1 {
				v = m[1]
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			found = append(found, v)
		}
	}

	collect(content)
	collect(whitespacePattern.ReplaceAllString(content, "\n"))

	return found
}

// Newest returns the greatest of candidates by Debian version ordering.
// Candidates that are not valid versions are skipped.
func Newest(candidates []string) (version.Version, bool) {
	var newest version.Version
	found := false

	for _, c := range candidates {
		v, err := version.Parse(c)
		if err != nil {
			logrus.Debugf("Skipping invalid version %q: %v", c, err)
			continue
		}
		if !found || version.Compare(v, newest) > 0 {
			newest = v
			found = true
		}
	}

	return newest, found
}
