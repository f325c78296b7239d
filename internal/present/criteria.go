package present

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vytor/rankedversus/internal/query"
)

// Query string parameters that seed the first filter and sort key.
const (
	ParamFilterBy    = "fb"
	ParamFilterCmp   = "fc"
	ParamFilterValue = "fv"
	ParamSortBy      = "sb"
	ParamSortDir     = "sd"
)

// fallbackNumber replaces a comparator or filter value that is not a number.
const fallbackNumber = 1

// Criteria are the plain filter and sort arguments handed to the query layer.
type Criteria struct {
	Filters []query.FilterBy
	Sorts   []query.SortBy
}

// ParseCriteria starts from the default criteria and overrides the first
// filter and the first sort key with whatever the parameters carry.
func ParseCriteria(params url.Values) Criteria {
	c := Criteria{
		Filters: query.DefaultFilters(),
		Sorts:   query.DefaultSorts(),
	}

	if params.Has(ParamFilterBy) {
		c.Filters[0].Field = query.Field(params.Get(ParamFilterBy))
	}
	if params.Has(ParamFilterCmp) {
		raw := params.Get(ParamFilterCmp)
		cmp, ok := query.ParseComparator(raw)
		if !ok {
			n, ok := leadingInt(raw)
			if !ok {
				n = fallbackNumber
			}
			cmp = query.Comparator(n)
		}
		c.Filters[0].Comparator = cmp
	}
	if params.Has(ParamFilterValue) {
		n, ok := leadingInt(params.Get(ParamFilterValue))
		if !ok {
			n = fallbackNumber
		}
		c.Filters[0].Value = n
	}
	if params.Has(ParamSortBy) {
		c.Sorts[0].Field = query.Field(params.Get(ParamSortBy))
	}
	if params.Has(ParamSortDir) {
		c.Sorts[0].Descending = params.Get(ParamSortDir) == "1"
	}
	return c
}

// Values encodes the first filter and sort key back into parameters.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if len(c.Filters) > 0 {
		f := c.Filters[0]
		v.Set(ParamFilterBy, string(f.Field))
		v.Set(ParamFilterCmp, strconv.Itoa(int(f.Comparator)))
		v.Set(ParamFilterValue, strconv.FormatInt(f.Value, 10))
	}
	if len(c.Sorts) > 0 {
		s := c.Sorts[0]
		v.Set(ParamSortBy, string(s.Field))
		if s.Descending {
			v.Set(ParamSortDir, "1")
		} else {
			v.Set(ParamSortDir, "0")
		}
	}
	return v
}

// leadingInt parses the optional sign and digits at the start of s, so "12x"
// reads as 12 and "x12" does not parse.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
