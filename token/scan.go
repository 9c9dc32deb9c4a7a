package token

import (
	"fmt"
	"strings"
)

type ItemType int

const (
	Blank ItemType = iota
	Comment
	Header
	ArrayHeader
	KeyValue
)

func (t ItemType) String() string {
	return map[ItemType]string{
		Blank:       "Blank",
		Comment:     "Comment",
		Header:      "Header",
		ArrayHeader: "ArrayHeader",
		KeyValue:    "KeyValue",
	}[t]
}

// Item is one scanned element of the source.  Lines holds the exact
// source lines the item occupies, without newlines.
type Item struct {
	Type  ItemType
	Pos   Pos
	Lines []string

	// Header, ArrayHeader
	Path    []string
	RawPath []string

	// KeyValue
	Key      string
	Parts    []string
	Dotted   bool
	RawKey   string
	RawValue string
	Trail    string
}

// Scan splits Cargo.toml source into items.
func Scan(d []byte) ([]Item, error) {
	text := string(d)
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	var items []Item
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		t := strings.TrimSpace(line)
		pos := Pos{Line: i + 1}
		switch {
		case t == "":
			items = append(items, Item{Type: Blank, Pos: pos, Lines: []string{line}})
		case t[0] == '#':
			items = append(items, Item{Type: Comment, Pos: pos, Lines: []string{line}})
		case t[0] == '[':
			it, err := scanHeader(line, t, pos)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		default:
			it, end, err := scanBinding(lines, i, pos)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
			i = end
		}
	}
	return items, nil
}

// HeaderPath extracts the decoded key path of a table header line and
// whether it opens an array-of-tables entry.
func HeaderPath(line string) ([]string, bool, error) {
	it, err := scanHeader(line, strings.TrimSpace(line), Pos{Line: 1})
	if err != nil {
		return nil, false, err
	}
	return it.Path, it.Type == ArrayHeader, nil
}

func scanHeader(line, trimmed string, pos Pos) (Item, error) {
	arr := strings.HasPrefix(trimmed, "[[")
	inner := trimmed[1:]
	if arr {
		inner = trimmed[2:]
	}
	parts, raw, rest, err := scanKeyParts(inner, pos)
	if err != nil {
		return Item{}, err
	}
	close := "]"
	if arr {
		close = "]]"
	}
	if !strings.HasPrefix(rest, close) {
		return Item{}, fmt.Errorf("%w: %s: malformed table header", ErrScan, pos)
	}
	after := strings.TrimSpace(rest[len(close):])
	if after != "" && after[0] != '#' {
		return Item{}, fmt.Errorf("%w: %s: unexpected %q after table header", ErrScan, pos, after)
	}
	typ := Header
	if arr {
		typ = ArrayHeader
	}
	return Item{
		Type:    typ,
		Pos:     pos,
		Lines:   []string{line},
		Path:    parts,
		RawPath: raw,
	}, nil
}

func scanBinding(lines []string, li int, pos Pos) (Item, int, error) {
	line := lines[li]
	eq := findAssign(line)
	if eq < 0 {
		return Item{}, 0, fmt.Errorf("%w: %s: expected key-value binding", ErrScan, pos)
	}
	rawKey := strings.TrimSpace(line[:eq])
	parts, _, rest, err := scanKeyParts(rawKey, pos)
	if err != nil {
		return Item{}, 0, err
	}
	if rest != "" {
		return Item{}, 0, fmt.Errorf("%w: %s: unexpected %q in key", ErrScan, pos, rest)
	}
	rawValue, trail, end, err := scanValue(lines, li, eq+1, pos)
	if err != nil {
		return Item{}, 0, err
	}
	it := Item{
		Type:     KeyValue,
		Pos:      pos,
		Lines:    append([]string(nil), lines[li:end+1]...),
		Key:      strings.Join(parts, "."),
		Parts:    parts,
		Dotted:   len(parts) > 1,
		RawKey:   rawKey,
		RawValue: rawValue,
		Trail:    trail,
	}
	return it, end, nil
}

// findAssign locates the '=' separating key and value, skipping any
// quoted key parts.
func findAssign(line string) int {
	var inBasic, inLiteral bool
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inBasic:
			if c == '\\' {
				i++
			} else if c == '"' {
				inBasic = false
			}
		case inLiteral:
			if c == '\'' {
				inLiteral = false
			}
		case c == '"':
			inBasic = true
		case c == '\'':
			inLiteral = true
		case c == '=':
			return i
		}
	}
	return -1
}

// scanValue consumes the value starting after the '=' at lines[li][ci:],
// following multi-line strings and bracketed composites onto subsequent
// lines.  It returns the exact value text, the trailing comment on the
// final line, and the index of the final line.
func scanValue(lines []string, li, ci int, pos Pos) (raw, trail string, end int, err error) {
	s := lines[li]
	for ci < len(s) && (s[ci] == ' ' || s[ci] == '\t') {
		ci++
	}
	if ci >= len(s) || s[ci] == '#' {
		return "", "", 0, fmt.Errorf("%w: %s: missing value", ErrScan, pos)
	}
	var endLi, endCi int
	switch {
	case strings.HasPrefix(s[ci:], `"""`):
		endLi, endCi, err = findMultiline(lines, li, ci+3, `"""`, true, pos)
	case s[ci] == '"':
		endLi, endCi, err = findSingleString(lines, li, ci+1, '"', true, pos)
	case strings.HasPrefix(s[ci:], "'''"):
		endLi, endCi, err = findMultiline(lines, li, ci+3, "'''", false, pos)
	case s[ci] == '\'':
		endLi, endCi, err = findSingleString(lines, li, ci+1, '\'', false, pos)
	case s[ci] == '[' || s[ci] == '{':
		endLi, endCi, err = findComposite(lines, li, ci, pos)
	default:
		endLi = li
		endCi = len(s)
		if j := strings.IndexByte(s[ci:], '#'); j >= 0 {
			endCi = ci + j
		}
		for endCi > ci && (s[endCi-1] == ' ' || s[endCi-1] == '\t') {
			endCi--
		}
	}
	if err != nil {
		return "", "", 0, err
	}
	last := lines[endLi]
	rest := strings.TrimSpace(last[endCi:])
	if rest != "" && rest[0] != '#' {
		return "", "", 0, fmt.Errorf("%w: %s: unexpected %q after value", ErrScan, Pos{Line: endLi + 1}, rest)
	}
	if endLi == li {
		raw = s[ci:endCi]
	} else {
		segs := make([]string, 0, endLi-li+1)
		segs = append(segs, s[ci:])
		for k := li + 1; k < endLi; k++ {
			segs = append(segs, lines[k])
		}
		segs = append(segs, last[:endCi])
		raw = strings.Join(segs, "\n")
	}
	return raw, rest, endLi, nil
}

// findSingleString finds the closing quote on the same line.
func findSingleString(lines []string, li, ci int, q byte, escapes bool, pos Pos) (int, int, error) {
	s := lines[li]
	for i := ci; i < len(s); i++ {
		c := s[i]
		if escapes && c == '\\' {
			i++
			continue
		}
		if c == q {
			return li, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %s: unterminated string", ErrScan, pos)
}

// findMultiline finds the closing delimiter of a multi-line string.
func findMultiline(lines []string, li, ci int, delim string, escapes bool, pos Pos) (int, int, error) {
	for l := li; l < len(lines); l++ {
		s := lines[l]
		i := 0
		if l == li {
			i = ci
		}
		for ; i < len(s); i++ {
			if escapes && s[i] == '\\' {
				i++
				continue
			}
			if strings.HasPrefix(s[i:], delim) {
				return l, i + len(delim), nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: %s: unterminated multi-line string", ErrScan, pos)
}

// findComposite consumes a bracketed value (array or inline table),
// which may span lines and contain strings and comments.
func findComposite(lines []string, li, ci int, pos Pos) (int, int, error) {
	depth := 0
	for l := li; l < len(lines); l++ {
		s := lines[l]
		i := 0
		if l == li {
			i = ci
		}
		for i < len(s) {
			c := s[i]
			switch c {
			case '[', '{':
				depth++
				i++
			case ']', '}':
				depth--
				i++
				if depth == 0 {
					return l, i, nil
				}
			case '"':
				if strings.HasPrefix(s[i:], `"""`) {
					el, ec, err := findMultiline(lines, l, i+3, `"""`, true, pos)
					if err != nil {
						return 0, 0, err
					}
					if el != l {
						l = el
						s = lines[l]
					}
					i = ec
					continue
				}
				_, ec, err := findSingleString(lines, l, i+1, '"', true, pos)
				if err != nil {
					return 0, 0, err
				}
				i = ec
			case '\'':
				if strings.HasPrefix(s[i:], "'''") {
					el, ec, err := findMultiline(lines, l, i+3, "'''", false, pos)
					if err != nil {
						return 0, 0, err
					}
					if el != l {
						l = el
						s = lines[l]
					}
					i = ec
					continue
				}
				_, ec, err := findSingleString(lines, l, i+1, '\'', false, pos)
				if err != nil {
					return 0, 0, err
				}
				i = ec
			case '#':
				i = len(s)
			default:
				i++
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: %s: unterminated array or inline table", ErrScan, pos)
}
