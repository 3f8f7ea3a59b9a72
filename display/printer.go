package display

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/partgen/engine"
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/internal/sysinfo"
	"github.com/teranos/partgen/logger"
	"github.com/teranos/partgen/sink"
)

// Printer renders human-facing output with pterm. What it shows depends on
// the verbosity it was created with; see logger.ShouldOutput.
type Printer struct {
	w         io.Writer
	verbosity int
}

func NewPrinter(w io.Writer, verbosity int) *Printer {
	return &Printer{w: w, verbosity: verbosity}
}

// Elapsed prints the total generation time in milliseconds
func (p *Printer) Elapsed(d time.Duration) {
	pterm.Fprintln(p.w, "Time elapsed: "+pterm.Green(fmt.Sprintf("%dms", d.Milliseconds())))
}

// Summary prints a per-pair table at -v and above, then the elapsed total
func (p *Printer) Summary(s engine.Summary) error {
	if logger.ShouldOutput(p.verbosity, logger.OutputSelection) {
		pterm.Fprintln(p.w, fmt.Sprintf("%s %s / %s / %s",
			pterm.LightCyan("run "+s.RunID), s.Mode, s.Algorithm, s.Visitor))
	}
	if logger.ShouldOutput(p.verbosity, logger.OutputConfig) {
		pterm.Fprintln(p.w, "Verbosity: "+logger.LevelName(p.verbosity))
	}

	if logger.ShouldOutput(p.verbosity, logger.OutputProgress) && len(s.Reports) > 0 {
		data := pterm.TableData{{"n", "k", "result", "ms", "cached"}}
		for _, rep := range s.Reports {
			data = append(data, []string{
				strconv.Itoa(rep.Pair.N),
				strconv.Itoa(rep.Pair.K),
				sink.FormatResult(rep.Result),
				strconv.FormatFloat(float64(rep.Elapsed)/float64(time.Millisecond), 'f', 3, 64),
				strconv.FormatBool(rep.Cached),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(p.w).Render(); err != nil {
			return errors.Wrap(err, "failed to render summary")
		}
	}

	p.Elapsed(s.Elapsed)
	return nil
}

// Memory prints process and host memory at -vv and above
func (p *Printer) Memory(m sysinfo.Memory) {
	if !logger.ShouldOutput(p.verbosity, logger.OutputResources) {
		return
	}
	pterm.Fprintln(p.w, fmt.Sprintf("Memory: %s resident, %s of %s available",
		pterm.Green(FormatBytes(m.ProcessRSS)), FormatBytes(m.HostAvailable), FormatBytes(m.HostTotal)))
}

// Table renders rows with the first row as header
func (p *Printer) Table(rows [][]string) error {
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(p.w).Render(); err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	return nil
}

// Success prints a confirmation line
func (p *Printer) Success(msg string) {
	pterm.Success.WithWriter(p.w).Println(msg)
}

// Error prints err followed by its hints, one per line. Configuration and
// batch input errors are labelled so they read apart from I/O failures.
func (p *Printer) Error(err error) {
	printer := pterm.Error
	switch {
	case errors.IsConfigError(err):
		printer = *printer.WithPrefix(pterm.Prefix{Text: "CONFIG", Style: pterm.Error.Prefix.Style})
	case errors.IsInvalidInputError(err):
		printer = *printer.WithPrefix(pterm.Prefix{Text: "INPUT", Style: pterm.Error.Prefix.Style})
	}
	printer.WithWriter(p.w).Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Fprintln(p.w, "  hint: "+hint)
	}
}

// FormatBytes renders n with a binary unit suffix, e.g. "12.5 MiB"
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
