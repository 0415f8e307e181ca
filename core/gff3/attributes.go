package gff3

import (
	"strings"
)

// Characters that must be percent-escaped inside attribute keys and values.
const reserved = ";=,%\t\n\r"

const hexDigits = "0123456789ABCDEF"

// DecodeAttributes parses the ninth column ("key=v1,v2;key2=v") into an
// ordered multimap. "." and "" decode to an empty mapping. Empty items
// (a trailing ';') are skipped; repeated keys accumulate values.
func DecodeAttributes(s string) (Attributes, error) {
	if s == "." || s == "" {
		return nil, nil
	}
	var out Attributes
	for _, item := range strings.Split(s, ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		rawKey, rawVal, ok := strings.Cut(item, "=")
		if !ok {
			return nil, newFormat("attributes", "item "+quote(item)+" has no '='")
		}
		key, err := unescape(rawKey)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, newFormat("attributes", "empty key in "+quote(item))
		}
		parts := strings.Split(rawVal, ",")
		vals := make([]string, len(parts))
		for i, p := range parts {
			if vals[i], err = unescape(p); err != nil {
				return nil, err
			}
		}
		out = out.Add(key, vals...)
	}
	return out, nil
}

// EncodeAttributes is the inverse of DecodeAttributes. Keys keep their
// order and an empty mapping encodes to ".".
func EncodeAttributes(a Attributes) string {
	if len(a) == 0 {
		return "."
	}
	var b strings.Builder
	for i, attr := range a {
		if i > 0 {
			b.WriteByte(';')
		}
		escapeTo(&b, attr.Key)
		b.WriteByte('=')
		for j, v := range attr.Values {
			if j > 0 {
				b.WriteByte(',')
			}
			escapeTo(&b, v)
		}
	}
	return b.String()
}

func escapeTo(b *strings.Builder, s string) {
	if !strings.ContainsAny(s, reserved) {
		b.WriteString(s)
		return
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(reserved, c) >= 0 {
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
}

func unescape(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", newFormat("attributes", "unbalanced escape sequence in "+quote(s))
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return "", newFormat("attributes", "bad escape sequence "+quote(s[i:i+3]))
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
