// Command blockarena is a thin interactive front-end over the
// internal/arena block allocator: a REPL and a short scripted demo.
// It holds no allocator logic of its own.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cloudfly/blockarena/cmd/blockarena/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("blockarena exited with an error")
		os.Exit(1)
	}
}
