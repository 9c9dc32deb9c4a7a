package token

import (
	"fmt"
	"strconv"
	"strings"
)

// isBareKeyChar reports whether c may appear in an unquoted key part.
func isBareKeyChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// scanKeyParts scans a (possibly dotted, possibly quoted) key at the
// start of s.  It returns the decoded parts, the parts exactly as
// written, and the unconsumed remainder of s.
func scanKeyParts(s string, pos Pos) (parts, raw []string, rest string, err error) {
	i := 0
	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			return nil, nil, "", fmt.Errorf("%w: %s: unexpected end of key", ErrScan, pos)
		}
		start := i
		switch s[i] {
		case '"':
			j := i + 1
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(s) {
				return nil, nil, "", fmt.Errorf("%w: %s: unterminated quoted key", ErrScan, pos)
			}
			parts = append(parts, decodeBasic(s[i+1:j]))
			raw = append(raw, s[start:j+1])
			i = j + 1
		case '\'':
			j := strings.IndexByte(s[i+1:], '\'')
			if j < 0 {
				return nil, nil, "", fmt.Errorf("%w: %s: unterminated quoted key", ErrScan, pos)
			}
			parts = append(parts, s[i+1:i+1+j])
			raw = append(raw, s[start:i+j+2])
			i = i + j + 2
		default:
			j := i
			for j < len(s) && isBareKeyChar(s[j]) {
				j++
			}
			if j == i {
				return nil, nil, "", fmt.Errorf("%w: %s: bad key character %q", ErrScan, pos, s[i])
			}
			parts = append(parts, s[i:j])
			raw = append(raw, s[i:j])
			i = j
		}
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i < len(s) && s[i] == '.' {
			i++
			continue
		}
		return parts, raw, s[i:], nil
	}
}

// decodeBasic decodes the content of a basic (double-quoted) string.
func decodeBasic(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'u', 'U':
			n := 4
			if s[i] == 'U' {
				n = 8
			}
			if i+n < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += n
					break
				}
			}
			b.WriteByte('\\')
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// DecodeString decodes a raw scalar that may be a quoted string; other
// scalars are returned unchanged.
func DecodeString(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return decodeBasic(raw[1 : len(raw)-1])
	}
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		return raw[1 : len(raw)-1]
	}
	return raw
}
