package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDemoCommand runs a short scripted sequence exercising every public
// operation once, for a quick manual sanity check without a real workload
// driving the allocator.
func (r *root) newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a short scripted alloc/free/realloc/dump sequence.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.newArena()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			small, ok := a.Alloc(32)
			if !ok {
				return fmt.Errorf("demo: alloc(32) failed unexpectedly")
			}
			fmt.Fprintf(out, "alloc(32)  -> %d\n", small)

			medium, ok := a.Alloc(300)
			if !ok {
				return fmt.Errorf("demo: alloc(300) failed unexpectedly")
			}
			fmt.Fprintf(out, "alloc(300) -> %d\n", medium)

			big, ok := a.Alloc(8192)
			if !ok {
				return fmt.Errorf("demo: alloc(8192) failed unexpectedly")
			}
			fmt.Fprintf(out, "alloc(8192)-> %d\n", big)

			grown, ok := a.Realloc(medium, 600)
			if !ok {
				return fmt.Errorf("demo: realloc(medium, 600) failed unexpectedly")
			}
			fmt.Fprintf(out, "realloc(%d, 600) -> %d\n", medium, grown)

			a.Free(small)
			a.Free(grown)
			a.Free(big)

			fmt.Fprintln(out, "--- dump after freeing everything ---")
			a.Dump(out)
			return nil
		},
	}
}
