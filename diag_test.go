package ember

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplateArgSubstitution(t *testing.T) {
	got := renderTemplate("expected {0} but found {1}", []DiagArg{ArgStr("a"), ArgStr("b")}, false)
	require.Equal(t, "expected a but found b", got)
}

func TestRenderTemplatePluralizer(t *testing.T) {
	one := renderTemplate("got {0} argument%0s", []DiagArg{ArgInt(1)}, false)
	many := renderTemplate("got {0} argument%0s", []DiagArg{ArgInt(3)}, false)
	assert.Equal(t, "got 1 argument", one)
	assert.Equal(t, "got 3 arguments", many)
}

func TestRenderTemplateBoldSpanPlain(t *testing.T) {
	got := renderTemplate("unknown %'{0}'%> here", []DiagArg{ArgChar('@')}, false)
	assert.Equal(t, "unknown '@' here", got)
}

func TestRenderTemplateBoldSpanColor(t *testing.T) {
	got := renderTemplate("unknown %'{0}'%> here", []DiagArg{ArgChar('@')}, true)
	assert.Contains(t, got, ansiTheme.bold)
	assert.Contains(t, got, ansiTheme.reset)
	assert.Contains(t, got, "'@'")
}

func TestFormatArgTypeAndTypeHint(t *testing.T) {
	tc := NewTypeContext()
	i32 := tc.Builtin(TyI32)
	assert.Equal(t, "i32", formatArg(ArgType(i32)))

	fn := tc.Function(tc.Void(), []*Type{i32})
	assert.Equal(t, "fn run(i32)", formatArg(ArgTypeHint(fn, "run")))
}

func TestDiagContextCountsBySeverity(t *testing.T) {
	var buf bytes.Buffer
	sources := NewSourceManager()
	dc := NewDiagContext(&buf, sources, false, func(int) {})
	file := sources.AddFile("a.em", []byte("x"))

	dc.New(DiagUnknownChar, file.ID, Caret(0)).WithArg(ArgChar('x')).Emit()
	require.Equal(t, 1, dc.NumErrors)

	w := dc.New(DiagWrongSeparator, file.ID, Caret(0))
	w.WithArg(ArgTok(TokComma)).WithArg(ArgTok(TokSemicolon)).Emit()
	require.Equal(t, 1, dc.NumWarnings)
}

func TestDiagContextWarningsAsErrors(t *testing.T) {
	var buf bytes.Buffer
	sources := NewSourceManager()
	dc := NewDiagContext(&buf, sources, false, func(int) {})
	dc.WarningsAsErrors = true
	file := sources.AddFile("a.em", []byte("x"))

	dc.New(DiagWrongSeparator, file.ID, Caret(0)).WithArg(ArgTok(TokComma)).WithArg(ArgTok(TokSemicolon)).Emit()
	require.Equal(t, 0, dc.NumWarnings)
	require.Equal(t, 1, dc.NumErrors)
}

func TestDiagContextSilenceWarnings(t *testing.T) {
	var buf bytes.Buffer
	sources := NewSourceManager()
	dc := NewDiagContext(&buf, sources, false, func(int) {})
	dc.SilenceWarnings = true
	file := sources.AddFile("a.em", []byte("x"))

	dc.New(DiagWrongSeparator, file.ID, Caret(0)).WithArg(ArgTok(TokComma)).WithArg(ArgTok(TokSemicolon)).Emit()
	require.Equal(t, 0, dc.NumWarnings)
	require.Empty(t, buf.String())
}

func TestDiagContextMaxErrorsTriggersExit(t *testing.T) {
	var buf bytes.Buffer
	sources := NewSourceManager()
	var exitCode int
	exited := false
	dc := NewDiagContext(&buf, sources, false, func(code int) { exited = true; exitCode = code })
	dc.MaxErrors = 2
	file := sources.AddFile("a.em", []byte("xx"))

	dc.New(DiagUnknownChar, file.ID, Caret(0)).WithArg(ArgChar('x')).Emit()
	require.False(t, exited)
	dc.New(DiagUnknownChar, file.ID, Caret(1)).WithArg(ArgChar('x')).Emit()
	require.True(t, exited)
	require.Equal(t, 1, exitCode)
}

func TestDiagContextFatalErrorsExitsImmediately(t *testing.T) {
	var buf bytes.Buffer
	sources := NewSourceManager()
	exited := false
	dc := NewDiagContext(&buf, sources, false, func(int) { exited = true })
	dc.FatalErrors = true
	file := sources.AddFile("a.em", []byte("x"))

	dc.New(DiagUnknownChar, file.ID, Caret(0)).WithArg(ArgChar('x')).Emit()
	require.True(t, exited)
}

func TestDiagContextRendersLocationAndExcerpt(t *testing.T) {
	var buf bytes.Buffer
	sources := NewSourceManager()
	dc := NewDiagContext(&buf, sources, false, func(int) {})
	file := sources.AddFile("a.em", []byte("let x = 1;\n"))

	dc.New(DiagRedeclaredVariable, file.ID, SourceRange{Begin: 4, End: 5}).WithArg(ArgStr("x")).Emit()
	out := buf.String()
	assert.Contains(t, out, "a.em:1:5")
	assert.Contains(t, out, "redefinition of 'x'")
	assert.Contains(t, out, "let x = 1;")
}
