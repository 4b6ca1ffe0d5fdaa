// Package report renders demo output: banners, section titles, result lines
// and tables.
//
// Styles are bound to a lipgloss renderer for the destination writer, so
// colour is emitted only when that writer is a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dshills/patternlab/internal/vfs"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Printer writes styled output to one writer.
type Printer struct {
	w io.Writer
	r *lipgloss.Renderer

	banner  lipgloss.Style
	section lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		r: r,
		banner: r.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 2),
		section: r.NewStyle().Bold(true).Foreground(colorPrimary),
		ok:      r.NewStyle().Foreground(colorSecondary),
		failed:  r.NewStyle().Foreground(colorError),
		muted:   r.NewStyle().Foreground(colorMuted).Italic(true),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(colorMuted),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Banner prints a boxed title.
func (p *Printer) Banner(title string) {
	fmt.Fprintln(p.w, p.banner.Render(title))
}

// Section prints a section heading preceded by a blank line.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.section.Render("-- "+title+" --"))
}

// Line prints a plain formatted line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Note prints a muted line.
func (p *Printer) Note(format string, args ...any) {
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(format, args...)))
}

// Result prints an OK or ERROR tagged line.
func (p *Printer) Result(ok bool, msg string) {
	if ok {
		fmt.Fprintf(p.w, "%s %s\n", p.ok.Render("[OK]"), msg)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.failed.Render("[ERROR]"), msg)
}

// Error prints "Error: <err>".
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.failed.Render("Error: "+err.Error()))
}

// Table prints rows under headers.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		})
	fmt.Fprintln(p.w, t.String())
}

// StoreTable prints a titled listing of store entries with their sizes.
func (p *Printer) StoreTable(title string, entries []vfs.Entry) {
	p.Section(title)
	if len(entries) == 0 {
		p.Note("(empty)")
		return
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Path, strconv.Itoa(e.Size)}
	}
	p.Table([]string{"path", "size in bytes"}, rows)
}
