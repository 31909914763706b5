package context

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/SParksLz/rez/internal/ui/style"
)

// Status tokens shown per resolved package in summaries.
const (
	statusNotFound = "NOT FOUND"
	statusLocal    = "local"
)

// Summarize writes a deterministic, human-readable report of the context:
// provenance, optional timestamp-cutoff note, search paths (verbose only),
// implicit and requested packages, and a columnised table of resolved
// packages with a per-row status token. It is a read-only view; missing
// package roots are marked NOT FOUND rather than failing.
func (rc *ResolvedContext) Summarize(w io.Writer, verbose bool) error {
	var b strings.Builder

	b.WriteString(style.Muted.Render(fmt.Sprintf("resolved by %s@%s, on %s, using Rez v%s",
		rc.provenance.User, rc.provenance.Host,
		formatTime(rc.provenance.Created, verbose), rc.provenance.RezVersion)) + "\n")
	if rc.timestamp != 0 {
		fmt.Fprintf(&b, "packages released after %s are being ignored\n",
			formatTime(rc.timestamp, verbose))
	}
	b.WriteString("\n")

	if verbose && len(rc.searchPaths) > 0 {
		b.WriteString("search paths:\n")
		for _, p := range rc.searchPaths {
			b.WriteString(p + "\n")
		}
		b.WriteString("\n")
	}

	if len(rc.implicit) > 0 {
		b.WriteString("implicit packages:\n")
		for _, p := range rc.implicit {
			b.WriteString(p + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("requested packages:\n")
	for _, p := range rc.requested {
		b.WriteString(p + "\n")
	}
	b.WriteString("\n")

	b.WriteString("resolved packages:\n")
	rows := make([][3]string, 0, len(rc.result.Packages))
	for _, pkg := range rc.result.Packages {
		tok := ""
		if _, err := os.Stat(pkg.Root); err != nil {
			tok = statusNotFound
		} else if rc.localPath != "" && strings.HasPrefix(pkg.Root, rc.localPath) {
			tok = statusLocal
		}
		rows = append(rows, [3]string{pkg.ShortName(), pkg.Root, tok})
	}
	b.WriteString(columnise(rows))

	_, err := io.WriteString(w, b.String())
	return err
}

// columnise pads the first two columns to their widest entries and styles the
// status token. Styling degrades to plain text on non-color terminals.
func columnise(rows [][3]string) string {
	var nameW, rootW int
	for _, r := range rows {
		nameW = max(nameW, len(r[0]))
		rootW = max(rootW, len(r[1]))
	}

	var b strings.Builder
	for _, r := range rows {
		line := fmt.Sprintf("%-*s  %-*s", nameW, r[0], rootW, r[1])
		if r[2] != "" {
			line += "  " + styleToken(r[2])
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}

func styleToken(tok string) string {
	switch tok {
	case statusNotFound:
		return style.NotFound.Render(tok)
	case statusLocal:
		return style.Local.Render(tok)
	}
	return tok
}

func formatTime(epoch int64, verbose bool) string {
	t := time.Unix(epoch, 0)
	if verbose {
		return fmt.Sprintf("%s (%d)", t.Format("Mon Jan 02 15:04:05 MST 2006"), epoch)
	}
	return t.Format("Mon Jan 02 15:04:05 2006")
}
