package arena

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a textual report of the whole directory to w: one line per
// page slot, `[i]\t` followed by `# free #`, `##`, or
// `# <block_size> | <free_count>(<max_blocks>) #`, terminated by a blank
// line. For observability only; not parsed back in by anything.
func (a *Arena) Dump(w io.Writer) {
	for p := int32(0); p < a.pageCount; p++ {
		fmt.Fprintf(w, "[%d]\t", p)
		switch v := *a.dirEntry(p); v {
		case slotFree:
			fmt.Fprintln(w, "# free #")
		case slotBusy:
			fmt.Fprintln(w, "##")
		default:
			desc := a.descriptorAt(v)
			mb := maxBlocks(a.pageBytes, desc.BlockSize, isInPage(desc.BlockSize))
			fmt.Fprintf(w, "# %d | %d(%d) #\n", desc.BlockSize, desc.FreeCount, mb)
		}
	}
	fmt.Fprintln(w)
}

// DumpString returns the report from Dump as a string, for convenience in
// tests.
func (a *Arena) DumpString() string {
	var b strings.Builder
	a.Dump(&b)
	return b.String()
}
