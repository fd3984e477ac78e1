package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pulse/kernel"
)

var (
	seqColor      = color.New(color.FgCyan)
	progressColor = color.New(color.FgGreen, color.Bold)
	suspendColor  = color.New(color.FgWhite)
	idleColor     = color.New(color.FgYellow)
)

// Printer writes records as one line per round:
//
//	#12 run {0,2} adv 0 2+ next {2}
//
// A trailing + marks a slot that progressed. Idle rounds end in "idle".
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Print(rec Record) error {
	var b strings.Builder
	b.WriteString(seqColor.Sprintf("#%d", rec.Seq))
	fmt.Fprintf(&b, " run %s adv", kernel.Mask(rec.Runnable))
	progressed := kernel.Mask(rec.Progressed)
	for _, s := range rec.Order {
		if progressed.Has(kernel.Slot(s)) {
			b.WriteString(" " + progressColor.Sprintf("%d+", s))
		} else {
			b.WriteString(" " + suspendColor.Sprintf("%d", s))
		}
	}
	fmt.Fprintf(&b, " next %s", kernel.Mask(rec.Next))
	if rec.Idle {
		b.WriteString(" " + idleColor.Sprint("idle"))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Replay prints every record in r and returns the number printed.
func (p *Printer) Replay(r io.Reader) (int, error) {
	recs, err := ReadAll(r)
	for i, rec := range recs {
		if perr := p.Print(rec); perr != nil {
			return i, perr
		}
	}
	return len(recs), err
}
