// Command emberc drives the Ember front end over one or more source
// files: lex, parse and check each, print every diagnostic produced,
// and exit non-zero iff at least one error was emitted.
//
// It does not generate code, mangle names, or emit a `_start` shim —
// those stay external collaborators; this binary only exercises the
// front end through to a checked AST.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	ember "github.com/emberlang/emberc"
)

func main() {
	var (
		astOnly     = flag.Bool("ast-only", false, "print the checked AST instead of compiling further")
		noColor     = flag.Bool("no-color", false, "disable colorized diagnostic output")
		maxErrors   = flag.Int("fmax-errors", 0, "stop after N errors (0 means unlimited)")
		fatalErrors = flag.Bool("Wfatal-errors", false, "stop at the first error")
		warnAsError = flag.Bool("Werror", false, "treat warnings as errors")
		rcPath      = flag.String("config", ".emberrc.yml", "path to an optional project config file")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("emberc: no input files")
	}

	opts := ember.NewOptions()
	if err := opts.LoadFile(*rcPath); err != nil {
		log.Fatal(err)
	}
	if *noColor {
		opts.SetBool("color", false)
	}
	if *maxErrors != 0 {
		opts.SetInt("max-errors", *maxErrors)
	}
	if *fatalErrors {
		opts.SetBool("fatal-errors", true)
	}
	if *warnAsError {
		opts.SetBool("warnings-as-errors", true)
	}

	sources := ember.NewSourceManager()
	diags := ember.NewDiagContext(os.Stdout, sources, opts.GetBool("color"), os.Exit)
	diags.MaxErrors = opts.GetInt("max-errors")
	diags.FatalErrors = opts.GetBool("fatal-errors")
	diags.WarningsAsErrors = opts.GetBool("warnings-as-errors")
	diags.SilenceWarnings = opts.GetBool("silence-warnings")
	diags.SilenceNotes = opts.GetBool("silence-notes")
	diags.ColumnOrigin = opts.GetInt("column-origin")
	diags.ContextMargin = opts.GetInt("context-margin")

	for _, path := range flag.Args() {
		compileOne(path, sources, diags, *astOnly)
	}

	if diags.NumErrors > 0 {
		os.Exit(1)
	}
}

func compileOne(path string, sources *ember.SourceManager, diags *ember.DiagContext, astOnly bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("emberc: %v", err)
	}
	file := sources.AddFile(path, src)

	arena := ember.NewArena()
	types := ember.NewTypeContext()
	idents := ember.NewIdentifierTable()
	sema := ember.NewSema(arena, types, diags, file.ID)

	lex := ember.NewLexer(file, idents, diags)
	parser := ember.NewParser(lex, sema, diags, file.ID, file.Bytes)
	tu := parser.ParseTranslationUnit()

	if astOnly {
		fmt.Printf("// %s\n", path)
		ember.DumpTranslationUnit(os.Stdout, tu)
	}
}
