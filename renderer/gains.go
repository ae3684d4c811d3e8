package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/performance"
)

// GainsMarkdown renders the capital gains of every position with the
// checkpoints that explain them. Positions without any gain nor held shares
// are skipped.
func GainsMarkdown(cp *performance.ClientPerformance) string {
	var b strings.Builder
	r := cp.Range()

	fmt.Fprintf(&b, "# Capital Gains from %s to %s\n\n", r.From, r.To)

	for _, g := range cp.Gains() {
		ConditionalBlock(&b, func(w io.Writer) bool {
			fmt.Fprintf(w, "## %s in %s\n\n", g.Security, g.Portfolio)
			fmt.Fprintln(w, "| Date | Shares | Mark | Carry |")
			fmt.Fprintln(w, "|:---|---:|---:|---:|")
			held := false
			for _, c := range g.Checkpoints {
				fmt.Fprintf(w, "| %s | %s | %s | %s |\n", c.Date, c.Shares, c.Mark, c.Carry)
				held = held || !c.Shares.IsZero()
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "| From | To | Shares | Open | Close | Gain |")
			fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
			for _, i := range g.Intervals {
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n", i.From, i.To, i.Shares, i.Open, i.Close, i.Gain.SignedString())
			}
			fmt.Fprintf(w, "| **Total** | | | | | **%s** |\n\n", g.Total.SignedString())
			return held || !g.Total.IsZero()
		})
	}
	fmt.Fprintf(&b, "Total capital gains: %s\n", cp.Valuation(performance.CapitalGains).SignedString())
	return b.String()
}
