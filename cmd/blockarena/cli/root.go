// Package cli wires the blockarena allocator into a small cobra command
// tree: a command struct carrying a *logrus.Entry and the cobra.Command
// built from it.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cloudfly/blockarena/internal/arena"
)

type root struct {
	arenaBytes int
	pageBytes  int
	debug      bool

	logger *logrus.Entry
}

// NewRootCommand builds the blockarena command tree.
func NewRootCommand() *cobra.Command {
	logger := logrus.New()
	r := &root{logger: logrus.NewEntry(logger)}

	cmd := &cobra.Command{
		Use:   "blockarena",
		Short: "Drive the fixed-arena block allocator from a shell.",
		Long: `blockarena is a thin front-end over the fixed-arena block
allocator in internal/arena. It holds no allocator logic of its own: each
subcommand just parses arguments and calls into the library.`,
	}
	cmd.PersistentFlags().IntVar(&r.arenaBytes, "arena-bytes", arena.DefaultConfig().ArenaBytes, "total arena size in bytes")
	cmd.PersistentFlags().IntVar(&r.pageBytes, "page-bytes", arena.DefaultConfig().PageBytes, "page size in bytes")
	cmd.PersistentFlags().BoolVar(&r.debug, "debug", false, "enable debug-level allocator tracing")

	cmd.PersistentPreRun = func(*cobra.Command, []string) {
		if r.debug {
			logger.SetLevel(logrus.DebugLevel)
		}
	}

	cmd.AddCommand(r.newReplCommand())
	cmd.AddCommand(r.newDemoCommand())
	return cmd
}

func (r *root) newArena() (*arena.Arena, error) {
	return arena.New(arena.Config{
		ArenaBytes: r.arenaBytes,
		PageBytes:  r.pageBytes,
		Logger:     r.logger,
	})
}
