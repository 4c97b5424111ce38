package render

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

// field reads one column of a spec. Exactly one of text and num is set.
type field struct {
	text func(model.CandidateSpec) string
	num  func(model.CandidateSpec) float64
}

var fieldsByColumn = map[string]field{
	"edf_name":                {text: func(s model.CandidateSpec) string { return s.EDFName }},
	"num_edf":                 {num: func(s model.CandidateSpec) float64 { return float64(s.NumEDF) }},
	"esc_name":                {text: func(s model.CandidateSpec) string { return s.ESCName }},
	"battery_name":            {text: func(s model.CandidateSpec) string { return s.BatteryName }},
	"total_weight":            {num: func(s model.CandidateSpec) float64 { return s.TotalWeight }},
	"total_thrust":            {num: func(s model.CandidateSpec) float64 { return s.TotalThrust }},
	"max_payload":             {num: func(s model.CandidateSpec) float64 { return s.MaxPayload }},
	"total_power_capacity":    {num: func(s model.CandidateSpec) float64 { return s.TotalPowerCapacity }},
	"max_current_consumption": {num: func(s model.CandidateSpec) float64 { return s.MaxCurrentConsumption }},
	"min_fly_time":            {num: func(s model.CandidateSpec) float64 { return s.MinFlyTime }},
	"hover_power":             {num: func(s model.CandidateSpec) float64 { return s.HoverPower }},
	"hover_time":              {num: func(s model.CandidateSpec) float64 { return s.HoverTime }},
}

func lookupField(column string) (field, error) {
	f, ok := fieldsByColumn[strings.ToLower(strings.TrimSpace(column))]
	if !ok {
		return field{}, fmt.Errorf("unknown column %q", column)
	}
	return f, nil
}

// Query selects and orders specs before they are written.
type Query struct {
	order   []func(a, b model.CandidateSpec) int
	matches []func(model.CandidateSpec) bool
}

// NewQuery parses sort keys and filter expressions.
//
// A sort key is a column name, descending when prefixed with "-". Later keys
// break ties of earlier ones.
//
// A filter is "<column><op><value>". Numeric columns accept =, !=, >, >=, <
// and <=. Text columns accept = and != (case-insensitive) and ~, which
// matches a case-insensitive substring. A spec is kept when it matches every
// filter.
func NewQuery(sortKeys, filters []string) (*Query, error) {
	q := &Query{}
	for _, key := range sortKeys {
		if strings.TrimSpace(key) == "" {
			continue
		}
		cmpFn, err := parseSortKey(key)
		if err != nil {
			return nil, err
		}
		q.order = append(q.order, cmpFn)
	}
	for _, expr := range filters {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		match, err := parseFilter(expr)
		if err != nil {
			return nil, err
		}
		q.matches = append(q.matches, match)
	}
	return q, nil
}

// Apply returns the filtered and sorted specs. The input is not modified and
// specs that compare equal keep their input order.
func (q *Query) Apply(specs []model.CandidateSpec) []model.CandidateSpec {
	out := lo.Filter(specs, func(s model.CandidateSpec, _ int) bool {
		for _, match := range q.matches {
			if !match(s) {
				return false
			}
		}
		return true
	})
	if len(q.order) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b model.CandidateSpec) int {
		for _, c := range q.order {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	})
	return out
}

func parseSortKey(key string) (func(a, b model.CandidateSpec) int, error) {
	key = strings.TrimSpace(key)
	desc := strings.HasPrefix(key, "-")
	f, err := lookupField(strings.TrimLeft(key, "+-"))
	if err != nil {
		return nil, fmt.Errorf("invalid sort key %q: %w", key, err)
	}

	sign := 1
	if desc {
		sign = -1
	}
	if f.text != nil {
		return func(a, b model.CandidateSpec) int { return sign * cmp.Compare(f.text(a), f.text(b)) }, nil
	}
	return func(a, b model.CandidateSpec) int { return sign * cmp.Compare(f.num(a), f.num(b)) }, nil
}

// operators is ordered so two-character operators are tried first.
var operators = []string{">=", "<=", "!=", "=", ">", "<", "~"}

func parseFilter(expr string) (func(model.CandidateSpec) bool, error) {
	i := strings.IndexAny(expr, "=!<>~")
	if i <= 0 {
		return nil, fmt.Errorf("invalid filter %q: want <column><op><value>", expr)
	}
	op, ok := lo.Find(operators, func(op string) bool { return strings.HasPrefix(expr[i:], op) })
	if !ok {
		return nil, fmt.Errorf("invalid filter %q: unknown operator", expr)
	}
	column, value := expr[:i], strings.TrimSpace(expr[i+len(op):])

	f, err := lookupField(column)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	if f.text != nil {
		return textFilter(expr, f.text, op, value)
	}
	return numFilter(expr, f.num, op, value)
}

func textFilter(expr string, get func(model.CandidateSpec) string, op, value string) (func(model.CandidateSpec) bool, error) {
	want := strings.ToLower(value)
	switch op {
	case "=":
		return func(s model.CandidateSpec) bool { return strings.ToLower(get(s)) == want }, nil
	case "!=":
		return func(s model.CandidateSpec) bool { return strings.ToLower(get(s)) != want }, nil
	case "~":
		return func(s model.CandidateSpec) bool { return strings.Contains(strings.ToLower(get(s)), want) }, nil
	}
	return nil, fmt.Errorf("invalid filter %q: operator %s does not apply to text", expr, op)
}

func numFilter(expr string, get func(model.CandidateSpec) float64, op, value string) (func(model.CandidateSpec) bool, error) {
	want, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %q is not a number", expr, value)
	}
	var keep func(float64) bool
	switch op {
	case "=":
		keep = func(v float64) bool { return v == want }
	case "!=":
		keep = func(v float64) bool { return v != want }
	case ">":
		keep = func(v float64) bool { return v > want }
	case ">=":
		keep = func(v float64) bool { return v >= want }
	case "<":
		keep = func(v float64) bool { return v < want }
	case "<=":
		keep = func(v float64) bool { return v <= want }
	default:
		return nil, fmt.Errorf("invalid filter %q: operator %s does not apply to numbers", expr, op)
	}
	return func(s model.CandidateSpec) bool { return keep(get(s)) }, nil
}
