package query

import (
	"strconv"
	"strings"
)

// Comparator codes match the values the viewer's query string carries.
type Comparator int

const (
	Less         Comparator = -2
	LessEqual    Comparator = -1
	Equal        Comparator = 0
	GreaterEqual Comparator = 1
	Greater      Comparator = 2
)

var comparatorNames = map[string]Comparator{
	"less":          Less,
	"less_equal":    LessEqual,
	"equal":         Equal,
	"greater_equal": GreaterEqual,
	"greater":       Greater,
}

// ParseComparator accepts a numeric code or a name such as "greater_equal".
// The result may still be an unknown code; validity is checked when criteria
// are compiled.
func ParseComparator(s string) (Comparator, bool) {
	s = strings.TrimSpace(s)
	if c, ok := comparatorNames[strings.ToLower(s)]; ok {
		return c, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return Comparator(n), true
}

func (c Comparator) String() string {
	for name, v := range comparatorNames {
		if v == c {
			return name
		}
	}
	return "comparator(" + strconv.Itoa(int(c)) + ")"
}

func (c Comparator) valid() bool {
	return c >= Less && c <= Greater
}

func (c Comparator) holds(v, target int64) bool {
	switch c {
	case Equal:
		return v == target
	case Less:
		return v < target
	case LessEqual:
		return v <= target
	case Greater:
		return v > target
	case GreaterEqual:
		return v >= target
	}
	return true
}
