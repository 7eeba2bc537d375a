package sfnt

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Well-known nameIDs in the naming table (name). This package only
// resolves the handful a font consumer typically wants to show.
const (
	NameFamily      = 1
	NameSubfamily   = 2
	NameFullName    = 4
	NamePostScript  = 6
	NameTypographic = 16
)

// Name looks up nameID in the name table at offset, preferring a
// Windows platform (3) Unicode BMP (1) record and otherwise taking the
// first record with that nameID. Macintosh platform (1) strings are
// returned byte for byte; all others are decoded as UTF-16BE. It returns
// ("", nil) if no matching record exists.
func Name(d Data, offset int, nameID uint16) (string, error) {
	if err := d.need(offset, 6); err != nil {
		return "", FormatError("name table truncated")
	}
	count, err := d.U16(offset + 2)
	if err != nil {
		return "", err
	}
	stringOffset, err := d.U16(offset + 4)
	if err != nil {
		return "", err
	}
	records := offset + 6
	if err := d.need(records, int(count)*12); err != nil {
		return "", FormatError("name table records truncated")
	}

	type candidate struct {
		platform, encoding uint16
		strOff, strLen     int
	}
	var best *candidate
	for i := 0; i < int(count); i++ {
		rec := records + i*12
		platform, err := d.U16(rec)
		if err != nil {
			return "", err
		}
		encoding, err := d.U16(rec + 2)
		if err != nil {
			return "", err
		}
		id, err := d.U16(rec + 6)
		if err != nil {
			return "", err
		}
		if id != nameID {
			continue
		}
		length, err := d.U16(rec + 8)
		if err != nil {
			return "", err
		}
		strOff, err := d.U16(rec + 10)
		if err != nil {
			return "", err
		}
		c := candidate{platform: platform, encoding: encoding,
			strOff: offset + int(stringOffset) + int(strOff), strLen: int(length)}
		if best == nil || (c.platform == 3 && c.encoding == 1) {
			best = &c
		}
	}
	if best == nil {
		return "", nil
	}
	if err := d.need(best.strOff, best.strLen); err != nil {
		return "", FormatError("name table string truncated")
	}
	raw := []byte(d[best.strOff : best.strOff+best.strLen])
	if best.platform == 1 {
		// Macintosh platform strings are single-byte (roughly
		// Mac Roman); not worth a full charmap for a handful of
		// ASCII-range font names, so pass them through verbatim.
		return string(raw), nil
	}
	return decodeUTF16BE(raw)
}

// decodeUTF16BE decodes the big-endian UTF-16 strings used by every
// non-Macintosh platform in the name table.
func decodeUTF16BE(b []byte) (string, error) {
	r := bytes.NewReader(b)
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoded, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return "", FormatError("name table string is not valid UTF-16")
	}
	return string(decoded), nil
}
