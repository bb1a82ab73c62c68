// Package query builds the query strings sent to search endpoints.
//
// A Search is an ordered set of key/value pairs. Every builder method returns
// a new Search and leaves the receiver untouched, so a configuration function
// of the form func(Search) Search can be applied without aliasing concerns:
//
//	s := query.New().
//		Where("text", "non non biyori").
//		Include("genres").
//		Limit(5)
//	s.Encode() // filter%5Btext%5D=non%20non%20biyori&include=genres&page%5Blimit%5D=5
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Pair is a single query parameter
type Pair struct {
	Key   string
	Value string
}

// Search accumulates query parameters in insertion order.
// The zero value is an empty filter set.
type Search struct {
	pairs []Pair
}

// New returns an empty Search
func New() Search {
	return Search{}
}

// Filter appends a raw key/value pair. Keys are not validated and duplicate
// keys are kept as repeated parameters.
func (s Search) Filter(key, value string) Search {
	// Cap the slice so append always copies instead of writing into a
	// backing array shared with an earlier Search value.
	s.pairs = append(s.pairs[:len(s.pairs):len(s.pairs)], Pair{Key: key, Value: value})
	return s
}

// Where filters on a resource attribute using the JSON:API filter[attr] form
func (s Search) Where(attr, value string) Search {
	return s.Filter("filter["+attr+"]", value)
}

// Include requests related resources to be side-loaded
func (s Search) Include(relationships ...string) Search {
	if len(relationships) == 0 {
		return s
	}
	return s.Filter("include", strings.Join(relationships, ","))
}

// Fields restricts the attributes returned for a resource type (sparse fieldsets)
func (s Search) Fields(resource string, fields ...string) Search {
	if len(fields) == 0 {
		return s
	}
	return s.Filter("fields["+resource+"]", strings.Join(fields, ","))
}

// Sort orders results. Prefix a field with "-" for descending order.
func (s Search) Sort(fields ...string) Search {
	if len(fields) == 0 {
		return s
	}
	return s.Filter("sort", strings.Join(fields, ","))
}

// Limit sets the page size of the single page being requested
func (s Search) Limit(n int) Search {
	return s.Filter("page[limit]", strconv.Itoa(n))
}

// Offset sets the offset of the single page being requested
func (s Search) Offset(n int) Search {
	return s.Filter("page[offset]", strconv.Itoa(n))
}

// Len returns the number of accumulated pairs
func (s Search) Len() int {
	return len(s.pairs)
}

// Pairs returns a copy of the accumulated pairs in insertion order
func (s Search) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Encode renders the pairs as a query string without a leading "?".
// An empty Search encodes to "".
func (s Search) Encode() string {
	if len(s.pairs) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, p := range s.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(escape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(escape(p.Value))
	}
	return sb.String()
}

// String implements fmt.Stringer
func (s Search) String() string {
	return s.Encode()
}

// Parse splits an encoded query string back into its ordered pairs
func Parse(raw string) ([]Pair, error) {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, "&")
	pairs := make([]Pair, 0, len(parts))
	for _, part := range parts {
		rawKey, rawValue, _ := strings.Cut(part, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("invalid query key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("invalid query value %q: %w", rawValue, err)
		}

		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	return pairs, nil
}

// escape applies query-component escaping with spaces as %20.
// QueryEscape turns a literal '+' into %2B, so every remaining '+' is a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
