package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator/control"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator/copyright"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator/readme"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator/tests"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/metadata"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/scanner"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/watcher"
	"github.com/sirupsen/logrus"
)

// Run executes the actions selected in config on the plugins sc discovers.
// Watch reports are written to out.
func Run(ctx context.Context, out io.Writer, config *models.Config, sc scanner.Scanner) error {
	// Step 1: Discover plugins
	logrus.Infof("Scanning directory: %s", config.BaseDir)
	names, err := sc.Discover(ctx, config.BaseDir)
	if err != nil {
		return &models.HelperError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to scan directory: %w", err),
		}
	}

	if len(names) == 0 {
		logrus.Warn("No plugins found in base directory")
	}

	// Step 2: Read the metadata of every plugin once
	reader := metadata.NewReader(config.BaseDir)
	plugins, err := reader.LoadPlugins(ctx, scanner.All(names))
	if err != nil {
		return err
	}

	// Step 3: Run the actions in their fixed order
	if config.Control {
		if err := runGenerator(ctx, control.NewGenerator(), config, plugins); err != nil {
			return err
		}
	}

	if config.Tests {
		if err := runGenerator(ctx, tests.NewGenerator(), config, plugins); err != nil {
			return err
		}
	}

	if config.Copyright {
		if err := runGenerator(ctx, copyright.NewGenerator(reader), config, plugins); err != nil {
			return err
		}
	}

	if config.Watch {
		logrus.Infof("Checking %d plugins for upstream updates...", len(plugins))
		w := watcher.NewWatcher(watcher.NewHTTPFetcher(config.UserAgent, config.Timeout), config.Workers)
		if err := watcher.Print(out, w.Check(ctx, plugins)); err != nil {
			logrus.Warnf("Failed to print watch reports: %v", err)
		}
	}

	if config.GenerateReadme {
		if err := runGenerator(ctx, readme.NewGenerator(reader), config, plugins); err != nil {
			return err
		}
	}

	return nil
}

func runGenerator(ctx context.Context, gen generator.Generator, config *models.Config, plugins []models.Plugin) error {
	logrus.Debugf("Validating plugins for %s", gen.Name())

	if err := gen.ValidatePlugins(plugins); err != nil {
		return err
	}

	if err := gen.Generate(ctx, config, plugins); err != nil {
		return fmt.Errorf("failed to generate %s: %w", gen.Name(), err)
	}

	return nil
}
