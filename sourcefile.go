package ember

import "sort"

// SourceLocation is a 0-based byte offset into exactly one source
// buffer.
type SourceLocation int

// SourceRange is a half-open [Begin, End) byte range. A caret is a
// range with End == Begin.
type SourceRange struct {
	Begin SourceLocation
	End   SourceLocation
}

// Caret builds a zero-width SourceRange at loc.
func Caret(loc SourceLocation) SourceRange {
	return SourceRange{Begin: loc, End: loc}
}

// IsCaret reports whether r carries no width.
func (r SourceRange) IsCaret() bool { return r.Begin == r.End }

// FileID is a stable, process-wide identifier for one source file,
// assigned in registration order. It is never reused.
type FileID int

const unknownFileID FileID = -1

// LineMap maintains a sorted, strictly monotonic sequence of
// byte offsets of line starts (the byte just after a '\n' or
// '\r\n'), and answers (offset) -> (line, column) queries by binary
// search. A LineMap with no recorded offsets behaves as if the whole
// file were line 1.
type LineMap struct {
	// starts[i] is the byte offset where line i+2 begins (line 1
	// always implicitly starts at offset 0 and is never stored).
	starts []int
}

// Add records a new line start. The contract is monotonic: offset
// must be strictly greater than the last recorded offset, or Add
// panics — this is an internal invariant the lexer is responsible
// for upholding, not a user-facing error condition.
func (lm *LineMap) Add(offset int) {
	if len(lm.starts) > 0 && offset <= lm.starts[len(lm.starts)-1] {
		panic("ember: LineMap.Add called with a non-monotonic offset")
	}
	lm.starts = append(lm.starts, offset)
}

// LineStart returns the byte offset at which 1-based line lineno
// begins. Querying a line past the last recorded start returns the
// offset of the last known line start.
func (lm *LineMap) LineStart(lineno int) int {
	if lineno <= 1 {
		return 0
	}
	idx := lineno - 2
	if idx < 0 {
		return 0
	}
	if idx >= len(lm.starts) {
		if len(lm.starts) == 0 {
			return 0
		}
		return lm.starts[len(lm.starts)-1]
	}
	return lm.starts[idx]
}

// LineCount returns how many lines the map currently knows about.
func (lm *LineMap) LineCount() int { return len(lm.starts) + 1 }

// Resolve converts a byte offset into a 1-based (line, column) pair.
// Columns count bytes from the start of the line, 1-based. The
// column origin is not applied here; SourceFile.Resolve adds its
// origin argument on top of this 1-based column.
func (lm *LineMap) Resolve(offset int) (lineno, colno int) {
	// Find the last recorded start <= offset.
	i := sort.Search(len(lm.starts), func(i int) bool {
		return lm.starts[i] > offset
	})
	lineno = i + 1
	lineStart := 0
	if i > 0 {
		lineStart = lm.starts[i-1]
	}
	colno = offset - lineStart + 1
	return lineno, colno
}

// SourceFile owns one translation unit's byte contents and its
// growing line map. Buffers are owned per-file and released with the
// file.
type SourceFile struct {
	ID      FileID
	Path    string
	Bytes   []byte
	Lines   LineMap
}

// NewSourceFile wraps src under path, ready for lexing. The line map
// starts empty; the lexer populates it incrementally as it scans
// newlines.
func NewSourceFile(id FileID, path string, src []byte) *SourceFile {
	return &SourceFile{ID: id, Path: path, Bytes: src}
}

// Resolve locates offset within the file, returning 1-based line and
// column plus columnOrigin (0 or 1, applied as an additive rendering
// adjustment).
func (f *SourceFile) Resolve(offset SourceLocation, columnOrigin int) (lineno, colno int) {
	lineno, colno = f.Lines.Resolve(int(offset))
	return lineno, colno + columnOrigin
}

// LineText returns the raw bytes of 1-based line lineno, without its
// trailing newline.
func (f *SourceFile) LineText(lineno int) []byte {
	start := f.Lines.LineStart(lineno)
	if start > len(f.Bytes) {
		return nil
	}
	end := len(f.Bytes)
	if nextStart := f.Lines.LineStart(lineno + 1); nextStart > start && nextStart <= len(f.Bytes) {
		end = nextStart
	}
	line := f.Bytes[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// SourceManager owns every SourceFile live during one compilation and
// hands out stable FileIDs, with no incremental query cache layered
// on top — incremental recompilation is out of scope here.
type SourceManager struct {
	files []*SourceFile
}

// NewSourceManager returns an empty manager.
func NewSourceManager() *SourceManager {
	return &SourceManager{}
}

// AddFile registers src under path and returns its owning SourceFile.
func (m *SourceManager) AddFile(path string, src []byte) *SourceFile {
	id := FileID(len(m.files))
	f := NewSourceFile(id, path, src)
	m.files = append(m.files, f)
	return f
}

// File returns the file registered under id, or nil.
func (m *SourceManager) File(id FileID) *SourceFile {
	if int(id) < 0 || int(id) >= len(m.files) {
		return nil
	}
	return m.files[id]
}
