package token

import "strconv"

// Pos locates an item in the source by 1-based line number.
type Pos struct {
	Line int
}

func (p Pos) String() string {
	return "line " + strconv.Itoa(p.Line)
}
