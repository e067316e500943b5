package ember

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// cfgValKind discriminates the dynamically-typed settings map Options
// is backed by: a single map keyed by option name, each slot tagged
// with its kind so a type-mismatched Get/Set panics instead of
// silently coercing.
type cfgValKind int

const (
	cfgBool cfgValKind = iota
	cfgInt
	cfgString
)

type cfgVal struct {
	kind cfgValKind
	b    bool
	i    int
	s    string
}

// Options is Ember's dynamically-typed settings map, covering the CLI
// surface: boolean switches, `-fNAME`/`-fno-NAME`/`-fNAME=INT`
// feature options, the `-O` level, diagnostic rendering toggles, and
// a file-backed `.emberrc.yml` project config.
type Options struct {
	values map[string]*cfgVal
}

// NewOptions returns an Options with every known setting defaulted
// once at construction rather than lazily per-lookup.
func NewOptions() *Options {
	o := &Options{values: make(map[string]*cfgVal)}
	o.SetBool("color", false)
	o.SetBool("fatal-errors", false)
	o.SetBool("warnings-as-errors", false)
	o.SetBool("silence-warnings", false)
	o.SetBool("silence-notes", false)
	o.SetBool("keep-comments", false)
	o.SetInt("max-errors", 0)
	o.SetInt("column-origin", 1)
	o.SetInt("context-margin", 1)
	o.SetString("opt-level", "0")
	o.SetString("output", "")
	return o
}

func (o *Options) slot(name string, kind cfgValKind) *cfgVal {
	v, ok := o.values[name]
	if !ok {
		panic(fmt.Sprintf("ember: unknown option %q", name))
	}
	if v.kind != kind {
		panic(fmt.Sprintf("ember: option %q is not a %v", name, kind))
	}
	return v
}

func (o *Options) set(name string, v *cfgVal) {
	if old, ok := o.values[name]; ok && old.kind != v.kind {
		panic(fmt.Sprintf("ember: option %q is not a %v", name, v.kind))
	}
	o.values[name] = v
}

func (o *Options) SetBool(name string, v bool) {
	o.set(name, &cfgVal{kind: cfgBool, b: v})
}

func (o *Options) GetBool(name string) bool {
	return o.slot(name, cfgBool).b
}

func (o *Options) SetInt(name string, v int) {
	o.set(name, &cfgVal{kind: cfgInt, i: v})
}

func (o *Options) GetInt(name string) int {
	return o.slot(name, cfgInt).i
}

func (o *Options) SetString(name string, v string) {
	o.set(name, &cfgVal{kind: cfgString, s: v})
}

func (o *Options) GetString(name string) string {
	return o.slot(name, cfgString).s
}

// featureFile is the shape of an on-disk `.emberrc.yml`: every field
// is optional, so a project config file need only override the
// settings it cares about.
type featureFile struct {
	Color            *bool   `yaml:"color"`
	FatalErrors      *bool   `yaml:"fatal_errors"`
	WarningsAsErrors *bool   `yaml:"warnings_as_errors"`
	SilenceWarnings  *bool   `yaml:"silence_warnings"`
	SilenceNotes     *bool   `yaml:"silence_notes"`
	KeepComments     *bool   `yaml:"keep_comments"`
	MaxErrors        *int    `yaml:"max_errors"`
	ColumnOrigin     *int    `yaml:"column_origin"`
	ContextMargin    *int    `yaml:"context_margin"`
	OptLevel         *string `yaml:"opt_level"`
}

// LoadFile merges the settings found in an optional `.emberrc.yml`
// project config file into o. A missing file is not an error — the
// caller passes the conventional path and LoadFile silently no-ops
// when it does not exist, the same "absence means defaults" posture
// every other config surface takes.
func (o *Options) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var f featureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("ember: parsing %s: %w", path, err)
	}
	apply := func(name string, p *bool) {
		if p != nil {
			o.SetBool(name, *p)
		}
	}
	apply("color", f.Color)
	apply("fatal-errors", f.FatalErrors)
	apply("warnings-as-errors", f.WarningsAsErrors)
	apply("silence-warnings", f.SilenceWarnings)
	apply("silence-notes", f.SilenceNotes)
	apply("keep-comments", f.KeepComments)
	if f.MaxErrors != nil {
		o.SetInt("max-errors", *f.MaxErrors)
	}
	if f.ColumnOrigin != nil {
		o.SetInt("column-origin", *f.ColumnOrigin)
	}
	if f.ContextMargin != nil {
		o.SetInt("context-margin", *f.ContextMargin)
	}
	if f.OptLevel != nil {
		o.SetString("opt-level", *f.OptLevel)
	}
	return nil
}

func (k cfgValKind) String() string {
	switch k {
	case cfgBool:
		return "bool"
	case cfgInt:
		return "int"
	case cfgString:
		return "string"
	}
	return "?"
}
