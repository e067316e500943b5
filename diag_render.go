package ember

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// colorTheme is the small ANSI palette used when rendering to a
// terminal: diagnostics are colorized by severity when color output
// is requested.
type colorTheme struct {
	note, warning, error_, fatal, bold, reset string
}

var plainTheme = colorTheme{}

var ansiTheme = colorTheme{
	note:    "\x1b[1;36m",
	warning: "\x1b[1;35m",
	error_:  "\x1b[1;31m",
	fatal:   "\x1b[1;31m",
	bold:    "\x1b[1m",
	reset:   "\x1b[0m",
}

func (c colorTheme) forSeverity(s Severity) string {
	switch s {
	case SevNote:
		return c.note
	case SevWarning:
		return c.warning
	case SevFatal:
		return c.fatal
	default:
		return c.error_
	}
}

// DiagContext owns the output stream, the source manager needed to
// render excerpts, the severity/color policy and the running
// per-severity counters.
type DiagContext struct {
	Out     io.Writer
	Sources *SourceManager

	Color          bool
	ColumnOrigin   int // 0 or 1; CLI default is 1
	ContextMargin  int // stored only; excerpts show just the lines the range spans

	MaxErrors        int  // 0 means unlimited
	FatalErrors      bool // -Wfatal-errors: exit on first error
	WarningsAsErrors bool
	SilenceWarnings  bool
	SilenceNotes     bool

	// Exit is called when the policy above decides the process should
	// stop; defaults to os.Exit in NewDiagContext but is overridable so
	// tests can observe the "would exit" decision without terminating.
	Exit func(code int)

	NumErrors   int
	NumWarnings int
	NumNotes    int
}

// NewDiagContext returns a context with the default rendering policy:
// column numbers start at 1, one line of context margin, colorized
// when color is requested, unlimited errors, warnings kept as
// warnings.
func NewDiagContext(out io.Writer, sources *SourceManager, color bool, exit func(code int)) *DiagContext {
	if exit == nil {
		exit = func(int) {}
	}
	return &DiagContext{
		Out:           out,
		Sources:       sources,
		Color:         color,
		ColumnOrigin:  0,
		ContextMargin: 1,
		Exit:          exit,
	}
}

// New starts building a diagnostic of kind at caret within file,
// defaulted to the kind's table severity.
func (dc *DiagContext) New(kind DiagKind, file FileID, caret SourceRange) *Diag {
	info, ok := diagTable[kind]
	if !ok {
		panic("ember: unregistered diagnostic kind")
	}
	return &Diag{ctx: dc, Kind: kind, Severity: info.Severity, File: file, Caret: caret}
}

func (dc *DiagContext) theme() colorTheme {
	if dc.Color {
		return ansiTheme
	}
	return plainTheme
}

// flush applies severity policy, renders d, writes it to Out, updates
// counters and triggers Exit when the policy requires it
// ("-fmax-errors=N" and "-Wfatal-errors").
func (dc *DiagContext) flush(d *Diag) {
	sev := d.Severity
	if sev == SevWarning && dc.WarningsAsErrors {
		sev = SevError
	}
	switch sev {
	case SevNote:
		if dc.SilenceNotes {
			return
		}
	case SevWarning:
		if dc.SilenceWarnings {
			return
		}
	}

	dc.render(d, sev)

	switch sev {
	case SevNote:
		dc.NumNotes++
	case SevWarning:
		dc.NumWarnings++
	case SevError, SevFatal:
		dc.NumErrors++
	}

	if sev == SevError || sev == SevFatal {
		if dc.FatalErrors {
			dc.Exit(1)
			return
		}
		if dc.MaxErrors > 0 && dc.NumErrors >= dc.MaxErrors {
			dc.Exit(1)
			return
		}
	}
}

// render writes one fully-formatted diagnostic (location, severity
// label, interpolated message, then source excerpts) to dc.Out.
func (dc *DiagContext) render(d *Diag, sev Severity) {
	theme := dc.theme()
	var loc string
	var file *SourceFile
	if dc.Sources != nil {
		file = dc.Sources.File(d.File)
	}
	if file != nil {
		line, col := file.Resolve(d.Caret.Begin, dc.ColumnOrigin)
		loc = fmt.Sprintf("%s:%d:%d", file.Path, line, col)
	} else {
		loc = "<unknown>"
	}

	msg := renderTemplate(diagTable[d.Kind].Template, d.Args, dc.Color)

	fmt.Fprintf(dc.Out, "%s%s: %s%s%s: %s\n",
		theme.bold, loc, theme.forSeverity(sev), sev.String(), theme.reset, msg)

	if file != nil {
		dc.renderExcerpt(file, d.Caret, theme)
		for _, r := range d.Ranges {
			dc.renderExcerpt(file, r, theme)
		}
	}
}

// renderExcerpt prints the source line(s) spanned by r with a margin
// gutter. A single-line range gets a `^` marker under its columns; a
// multi-line range prints its first and last lines, eliding interior
// lines with "..." when it crosses more than two lines, and no marker.
func (dc *DiagContext) renderExcerpt(file *SourceFile, r SourceRange, theme colorTheme) {
	beginLine, beginCol := file.Resolve(r.Begin, dc.ColumnOrigin)
	endLine, endCol := file.Resolve(r.End, dc.ColumnOrigin)

	gutter := len(strconv.Itoa(endLine)) + 1

	printLine := func(lineno int) {
		text := file.LineText(lineno)
		fmt.Fprintf(dc.Out, "%*d | %s\n", gutter, lineno, text)
	}

	printMarker := func(col, length int) {
		pad := strings.Repeat(" ", gutter) + " | " + strings.Repeat(" ", max(col-1, 0))
		mark := theme.bold + strings.Repeat("^", max(length, 1)) + theme.reset
		fmt.Fprintln(dc.Out, pad+mark)
	}

	if beginLine == endLine {
		printLine(beginLine)
		length := endCol - beginCol
		if r.IsCaret() {
			length = 1
		}
		printMarker(beginCol, length)
		return
	}

	printLine(beginLine)
	if endLine-beginLine > 1 {
		fmt.Fprintf(dc.Out, "%*s | ...\n", gutter, "")
	}
	printLine(endLine)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// renderTemplate interpolates one message template against args,
// supporting three constructs:
//
//   - {N}    substitutes the formatted Nth argument
//   - %Ns    appends "s" iff argument N is an integer >= 2 (pluralizer)
//   - %text%> renders the enclosed literal text (which may itself
//     contain {N} substitutions) in bold when color is enabled
func renderTemplate(tmpl string, args []DiagArg, color bool) string {
	var b strings.Builder
	renderTemplateInto(&b, tmpl, args, color)
	return b.String()
}

func renderTemplateInto(b *strings.Builder, tmpl string, args []DiagArg, color bool) {
	i := 0
	for i < len(tmpl) {
		c := tmpl[i]
		switch {
		case c == '{':
			j := strings.IndexByte(tmpl[i:], '}')
			if j < 0 {
				b.WriteString(tmpl[i:])
				return
			}
			j += i
			n, err := strconv.Atoi(tmpl[i+1 : j])
			if err == nil && n >= 0 && n < len(args) {
				b.WriteString(formatArg(args[n]))
			}
			i = j + 1

		case c == '%' && i+2 < len(tmpl) && isDigit(tmpl[i+1]) && tmpl[i+2] == 's':
			n := int(tmpl[i+1] - '0')
			if n < len(args) && args[n].kind == ArgKindInt && args[n].n >= 2 {
				b.WriteByte('s')
			}
			i += 3

		case c == '%':
			j := strings.Index(tmpl[i+1:], "%>")
			if j < 0 {
				b.WriteString(tmpl[i:])
				return
			}
			j += i + 1
			inner := tmpl[i+1 : j]
			if color {
				b.WriteString(ansiTheme.bold)
			}
			renderTemplateInto(b, inner, args, color)
			if color {
				b.WriteString(ansiTheme.reset)
			}
			i = j + 2

		default:
			b.WriteByte(c)
			i++
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// formatArg renders one tagged argument using its own per-kind
// formatter (char, int, str, token-kind, identifier, type,
// type-with-name-hint).
func formatArg(a DiagArg) string {
	switch a.kind {
	case ArgKindChar:
		if a.ch >= 0x20 && a.ch < 0x7f {
			return string(a.ch)
		}
		return fmt.Sprintf("\\x%02x", a.ch)
	case ArgKindInt:
		return strconv.Itoa(a.n)
	case ArgKindStr:
		return a.s
	case ArgKindTokKind:
		return a.tok.String()
	case ArgKindIdent:
		if a.ident == nil {
			return "<anonymous>"
		}
		return a.ident.Spelling
	case ArgKindType:
		return Pretty(a.ty, "")
	case ArgKindTypeHint:
		return Pretty(a.ty, a.hint)
	}
	return "?"
}
