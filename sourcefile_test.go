package ember

import "testing"

func TestLineMapNoNewlines(t *testing.T) {
	var lm LineMap
	line, col := lm.Resolve(0)
	if line != 1 || col != 1 {
		t.Fatalf("got (%d,%d), want (1,1)", line, col)
	}
	line, col = lm.Resolve(42)
	if line != 1 || col != 43 {
		t.Fatalf("got (%d,%d), want (1,43)", line, col)
	}
}

func TestLineMapIncrementalAdd(t *testing.T) {
	var lm LineMap
	lm.Add(5)  // line 2 starts at offset 5
	lm.Add(10) // line 3 starts at offset 10

	cases := []struct {
		offset         int
		lineno, colno int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{5, 2, 1},
		{9, 2, 5},
		{10, 3, 1},
		{15, 3, 6},
	}
	for _, c := range cases {
		line, col := lm.Resolve(c.offset)
		if line != c.lineno || col != c.colno {
			t.Errorf("Resolve(%d) = (%d,%d), want (%d,%d)", c.offset, line, col, c.lineno, c.colno)
		}
	}
}

func TestLineMapAddPanicsOnNonMonotonic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-monotonic Add")
		}
	}()
	var lm LineMap
	lm.Add(10)
	lm.Add(5)
}

func TestSourceFileLineText(t *testing.T) {
	src := []byte("first\nsecond\nthird")
	f := NewSourceFile(0, "test.em", src)
	// Simulate the lexer crossing each newline.
	for i, b := range src {
		if b == '\n' {
			f.Lines.Add(i + 1)
		}
	}
	if got := string(f.LineText(1)); got != "first" {
		t.Errorf("line 1 = %q, want %q", got, "first")
	}
	if got := string(f.LineText(2)); got != "second" {
		t.Errorf("line 2 = %q, want %q", got, "second")
	}
	if got := string(f.LineText(3)); got != "third" {
		t.Errorf("line 3 = %q, want %q", got, "third")
	}
}

func TestSourceManagerAddFile(t *testing.T) {
	m := NewSourceManager()
	a := m.AddFile("a.em", []byte("a"))
	b := m.AddFile("b.em", []byte("b"))
	if a.ID == b.ID {
		t.Fatal("expected distinct FileIDs")
	}
	if m.File(a.ID) != a || m.File(b.ID) != b {
		t.Fatal("File(id) did not round-trip")
	}
	if m.File(FileID(99)) != nil {
		t.Fatal("expected nil for an unregistered FileID")
	}
}
