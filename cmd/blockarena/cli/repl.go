package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudfly/blockarena/internal/arena"
)

func (r *root) newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read init/alloc/free/realloc/dump commands from stdin against one arena.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.newArena()
			if err != nil {
				return err
			}
			return runRepl(a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runRepl dispatches one line at a time against a, until EOF. Recognized
// commands: init / alloc <size> / free <ref> / realloc <ref> <size> / dump.
func runRepl(a *arena.Arena, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := dispatch(a, out, fields); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
	return scanner.Err()
}

func dispatch(a *arena.Arena, out io.Writer, fields []string) error {
	switch fields[0] {
	case "init":
		a.Init()
		fmt.Fprintln(out, "ok")
	case "alloc":
		size, err := parseArg(fields, 1, "size")
		if err != nil {
			return err
		}
		ref, ok := a.Alloc(size)
		if !ok {
			fmt.Fprintln(out, "fail")
			return nil
		}
		fmt.Fprintln(out, int32(ref))
	case "free":
		ref, err := parseArg(fields, 1, "ref")
		if err != nil {
			return err
		}
		a.Free(arena.Ref(ref))
		fmt.Fprintln(out, "ok")
	case "realloc":
		ref, err := parseArg(fields, 1, "ref")
		if err != nil {
			return err
		}
		size, err := parseArg(fields, 2, "size")
		if err != nil {
			return err
		}
		newRef, ok := a.Realloc(arena.Ref(ref), size)
		if !ok {
			fmt.Fprintln(out, "fail")
			return nil
		}
		fmt.Fprintln(out, int32(newRef))
	case "dump":
		a.Dump(out)
	default:
		return fmt.Errorf("unrecognized command %q", fields[0])
	}
	return nil
}

func parseArg(fields []string, idx int, name string) (int, error) {
	if idx >= len(fields) {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	return strconv.Atoi(fields[idx])
}
