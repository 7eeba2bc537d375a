package sfnt

import "testing"

func utf16be(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}

// buildNameTable assembles a minimal name table with one record.
func buildNameTable(platform, encoding, nameID uint16, value string) Data {
	str := utf16be(value)
	header := make([]byte, 6)
	put16(header, 2, 1) // count
	put16(header, 4, 18) // stringOffset, right after the one record
	record := make([]byte, 12)
	put16(record, 0, platform)
	put16(record, 2, encoding)
	put16(record, 4, 0) // languageID
	put16(record, 6, nameID)
	put16(record, 8, uint16(len(str)))
	put16(record, 10, 0)
	b := append(header, record...)
	b = append(b, str...)
	return Data(b)
}

func TestNameResolvesWindowsUnicode(t *testing.T) {
	d := buildNameTable(3, 1, NameFamily, "Inkwell Sans")
	got, err := Name(d, 0, NameFamily)
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if got != "Inkwell Sans" {
		t.Errorf("Name(NameFamily): got %q, want %q", got, "Inkwell Sans")
	}
}

func TestNameMissingRecordIsEmpty(t *testing.T) {
	d := buildNameTable(3, 1, NameFamily, "Inkwell Sans")
	got, err := Name(d, 0, NameSubfamily)
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if got != "" {
		t.Errorf("Name(NameSubfamily) on a font without one: got %q, want empty", got)
	}
}

func TestNameMacintoshPassthrough(t *testing.T) {
	header := make([]byte, 6)
	put16(header, 2, 1)
	put16(header, 4, 18)
	record := make([]byte, 12)
	put16(record, 0, 1) // platform = Macintosh
	put16(record, 6, NameFamily)
	put16(record, 8, uint16(len("Foo")))
	b := append(header, record...)
	b = append(b, []byte("Foo")...)
	got, err := Name(Data(b), 0, NameFamily)
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if got != "Foo" {
		t.Errorf("Name (Macintosh passthrough): got %q, want %q", got, "Foo")
	}
}
