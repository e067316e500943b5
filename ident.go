package ember

// Identifier is the canonical record for one distinct spelling,
// interned once per compilation. Two identifiers compare equal iff
// they are the same pointer.
type Identifier struct {
	Spelling string
	// Kind is TokIdentifier until registerKeywords patches it to the
	// specific keyword kind for the closed keyword set.
	Kind TokenKind
}

// IsKeyword reports whether this spelling was registered as a
// keyword.
func (id *Identifier) IsKeyword() bool {
	return id.Kind != TokIdentifier
}

// IdentifierTable interns byte spellings to stable *Identifier
// records. Records, once created, are never freed or relocated for
// the lifetime of the compilation; storing *Identifier
// values in the backing map gives pointer stability across growth for
// free, since growing the map only moves the pointers themselves, not
// the records they point to.
type IdentifierTable struct {
	records map[string]*Identifier
}

// NewIdentifierTable returns a table with the closed keyword set
// already registered, ready for the lexer to intern identifiers
// against.
func NewIdentifierTable() *IdentifierTable {
	t := &IdentifierTable{records: make(map[string]*Identifier, 256)}
	t.registerKeywords()
	return t
}

// Lookup returns the existing record for spelling, allocating one on
// first sight. Raw identifiers (lexer-level `r#` prefix) are expected
// to call Lookup with the un-prefixed spelling — this keeps `r#foo`
// and `foo` sharing one record even though the token produced for
// the former is always the generic identifier kind.
func (t *IdentifierTable) Lookup(spelling string) *Identifier {
	if rec, ok := t.records[spelling]; ok {
		return rec
	}
	rec := &Identifier{Spelling: spelling, Kind: TokIdentifier}
	t.records[spelling] = rec
	return rec
}

// registerKeywords walks the closed keyword table (token.go) once,
// patching the TokenKind field of each already- or newly-interned
// record: a single fixed pass over a static table, not a per-lookup
// check.
func (t *IdentifierTable) registerKeywords() {
	for _, e := range tokenTable {
		if !e.keyword {
			continue
		}
		rec := t.Lookup(e.spelling)
		rec.Kind = e.kind
	}
}
