package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, cli.ErrNoAction) {
		logrus.Error(err)
	}

	stop()
	os.Exit(cli.ExitCode(err))
}
