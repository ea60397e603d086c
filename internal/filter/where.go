// Package filter selects recorded steps with --where clauses.
package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/testspark/testspark/internal/domain"
)

// Fields that a where clause may reference
var Fields = []string{"id", "type", "target", "value", "expected", "description"}

// WhereClause represents a parsed --where condition
type WhereClause struct {
	Field    string
	Operator string
	Value    string
	regex    *regexp.Regexp // Compiled regex for ~ and !~ operators
}

// ParseWhereClause parses a clause like "type=click" or "target~#user".
// Supported operators: =, !=, ~, !~, >=, <=, ^, $
func ParseWhereClause(clause string) (*WhereClause, error) {
	// Longest operators first to avoid partial matches
	operators := []string{"!~", ">=", "<=", "!=", "~", "=", "^", "$"}

	for _, op := range operators {
		idx := strings.Index(clause, op)
		if idx <= 0 {
			continue
		}
		field := strings.ToLower(strings.TrimSpace(clause[:idx]))
		value := strings.TrimSpace(clause[idx+len(op):])

		if field == "" || value == "" {
			return nil, fmt.Errorf("invalid where clause: %s", clause)
		}
		if !lo.Contains(Fields, field) {
			return nil, fmt.Errorf("unknown field %q in where clause (use %s)", field, strings.Join(Fields, ", "))
		}

		wc := &WhereClause{Field: field, Operator: op, Value: value}

		switch op {
		case "~", "!~":
			re, err := regexp.Compile(value)
			if err != nil {
				return nil, fmt.Errorf("invalid regex in where clause '%s': %w", clause, err)
			}
			wc.regex = re
		case ">=", "<=":
			if field != "id" {
				return nil, fmt.Errorf("operator %s only applies to id: %s", op, clause)
			}
			if _, err := strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid id in where clause '%s': %w", clause, err)
			}
		}

		return wc, nil
	}

	return nil, fmt.Errorf("no valid operator found in where clause: %s (use =, !=, ~, !~, >=, <=, ^, $)", clause)
}

// Match checks if a step matches this where clause
func (wc *WhereClause) Match(step domain.Step) bool {
	fieldValue := wc.fieldValue(step)

	switch wc.Operator {
	case "=":
		return fieldValue == wc.Value
	case "!=":
		return fieldValue != wc.Value
	case "~":
		return wc.regex.MatchString(fieldValue)
	case "!~":
		return !wc.regex.MatchString(fieldValue)
	case "^":
		return strings.HasPrefix(fieldValue, wc.Value)
	case "$":
		return strings.HasSuffix(fieldValue, wc.Value)
	case ">=", "<=":
		bound, _ := strconv.Atoi(wc.Value)
		if wc.Operator == ">=" {
			return step.ID >= bound
		}
		return step.ID <= bound
	}

	return false
}

func (wc *WhereClause) fieldValue(step domain.Step) string {
	switch wc.Field {
	case "id":
		return strconv.Itoa(step.ID)
	case "type":
		return string(step.Type)
	case "target":
		return step.Target
	case "value":
		return step.Value
	case "expected":
		return step.Expected
	case "description":
		return step.Description
	default:
		return ""
	}
}

// WhereFilter applies multiple where clauses (AND logic)
type WhereFilter struct {
	clauses []*WhereClause
}

// NewWhereFilter creates a filter from where clause strings. No clauses
// yields a nil filter, which matches everything.
func NewWhereFilter(whereClauses []string) (*WhereFilter, error) {
	if len(whereClauses) == 0 {
		return nil, nil
	}

	filter := &WhereFilter{}
	for _, clause := range whereClauses {
		wc, err := ParseWhereClause(clause)
		if err != nil {
			return nil, err
		}
		filter.clauses = append(filter.clauses, wc)
	}

	return filter, nil
}

// Match returns true if the step matches all clauses
func (f *WhereFilter) Match(step domain.Step) bool {
	if f == nil {
		return true
	}
	for _, clause := range f.clauses {
		if !clause.Match(step) {
			return false
		}
	}
	return true
}

// Apply returns the matching steps in their original order
func (f *WhereFilter) Apply(steps []domain.Step) []domain.Step {
	return lo.Filter(steps, func(s domain.Step, _ int) bool { return f.Match(s) })
}
