package ember

import "testing"

func TestDecodeIntDecimalWithSeparators(t *testing.T) {
	v, overflow := DecodeInt([]byte("1_000_000"), RadixDecimal)
	if overflow {
		t.Fatal("unexpected overflow")
	}
	if v != 1000000 {
		t.Fatalf("got %d, want 1000000", v)
	}
}

func TestDecodeIntHex(t *testing.T) {
	v, overflow := DecodeInt([]byte("ff"), RadixHex)
	if overflow || v != 255 {
		t.Fatalf("got (%d, %v), want (255, false)", v, overflow)
	}
}

func TestDecodeIntBinary(t *testing.T) {
	v, overflow := DecodeInt([]byte("1010"), RadixBinary)
	if overflow || v != 10 {
		t.Fatalf("got (%d, %v), want (10, false)", v, overflow)
	}
}

func TestDecodeIntOverflow(t *testing.T) {
	// 2^64, one past the max uint64 value.
	_, overflow := DecodeInt([]byte("18446744073709551616"), RadixDecimal)
	if !overflow {
		t.Fatal("expected overflow")
	}
}

func TestDecodeIntMaxDoesNotOverflow(t *testing.T) {
	v, overflow := DecodeInt([]byte("18446744073709551615"), RadixDecimal)
	if overflow {
		t.Fatal("unexpected overflow at uint64 max")
	}
	if v != 18446744073709551615 {
		t.Fatalf("got %d", v)
	}
}

func TestDecodeFloatBasic(t *testing.T) {
	v, overflow := DecodeFloat([]byte("3.14"))
	if overflow {
		t.Fatal("unexpected overflow")
	}
	if v != 3.14 {
		t.Fatalf("got %v", v)
	}
}

func TestDecodeFloatWithSeparatorsAndExponent(t *testing.T) {
	v, overflow := DecodeFloat([]byte("1_234.5e2"))
	if overflow {
		t.Fatal("unexpected overflow")
	}
	if v != 123450 {
		t.Fatalf("got %v, want 123450", v)
	}
}

func TestDecodeStringEscapes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`hello`, "hello"},
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`\"`, `"`},
		{`\\`, `\`},
	}
	for _, c := range cases {
		got := DecodeString([]byte(c.in))
		if got != c.want {
			t.Errorf("DecodeString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDecodeStringUnicodeEscape(t *testing.T) {
	got := DecodeString([]byte(`\u{48}\u{65}\u{6C}\u{6C}\u{6F}`))
	if got != "Hello" {
		t.Fatalf("got %q, want %q", got, "Hello")
	}
}

func TestDecodeStringInvalidCodePointIsDropped(t *testing.T) {
	// 0x110000 is above the maximum valid code point.
	got := DecodeString([]byte(`a\u{110000}b`))
	if got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
	// 0xD800 falls inside the UTF-16 surrogate range.
	got = DecodeString([]byte(`a\u{D800}b`))
	if got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}

func TestDecodeStringHexByteEscape(t *testing.T) {
	// \x followed by one octal digit and one hex digit, per the
	// documented escape shape: here "0" (octal) and "a" (hex) encode
	// byte value 0*16 + 10 = 10.
	got := DecodeString([]byte(`\x0a`))
	want := string([]byte{10})
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
