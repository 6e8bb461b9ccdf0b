package search

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// Candidate is an item with the folder names leading to it from the root
type Candidate struct {
	Item model.Item
	Path []string
}

// FilterExpr is a node of a parsed query
type FilterExpr interface {
	Matches(c Candidate) bool
	String() string
}

// Select returns every item below root accepted by expr, in traversal order
func Select(root *model.Folder, expr FilterExpr) []Result {
	var results []Result
	root.Walk(func(item model.Item, path []string) {
		if !expr.Matches(Candidate{Item: item, Path: path}) {
			return
		}
		results = append(results, Result{
			DisplayName: DisplayName(model.NameOf(item), path),
			Item:        item,
			Path:        slices.Clone(path),
		})
	})
	return results
}

// NameExpr matches the item name with a Matcher
type NameExpr struct {
	m Matcher
}

func NewTextExpr(term string) *NameExpr  { return &NameExpr{m: NewSubstringMatcher(term)} }
func NewFuzzyExpr(term string) *NameExpr { return &NameExpr{m: NewFuzzyMatcher(term)} }

func (e *NameExpr) Matches(c Candidate) bool { return e.m.Matches(model.NameOf(c.Item)) }
func (e *NameExpr) String() string           { return e.m.String() }

// RegexExpr matches the item name against a case-insensitive pattern
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.Errorf("%w: bad regex /%s/: %v", ErrInvalidQuery, pattern, err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(c Candidate) bool { return e.re.MatchString(model.NameOf(c.Item)) }
func (e *RegexExpr) String() string           { return fmt.Sprintf("regex(/%s/)", e.pattern) }

// AlwaysMatchExpr is the empty query
type AlwaysMatchExpr struct{}

func (AlwaysMatchExpr) Matches(Candidate) bool { return true }
func (AlwaysMatchExpr) String() string         { return "all" }

type AndExpr struct {
	Left, Right FilterExpr
}

func (e *AndExpr) Matches(c Candidate) bool { return e.Left.Matches(c) && e.Right.Matches(c) }
func (e *AndExpr) String() string           { return fmt.Sprintf("(%s AND %s)", e.Left, e.Right) }

type OrExpr struct {
	Left, Right FilterExpr
}

func (e *OrExpr) Matches(c Candidate) bool { return e.Left.Matches(c) || e.Right.Matches(c) }
func (e *OrExpr) String() string           { return fmt.Sprintf("(%s OR %s)", e.Left, e.Right) }

type NotExpr struct {
	Inner FilterExpr
}

func (e *NotExpr) Matches(c Candidate) bool { return !e.Inner.Matches(c) }
func (e *NotExpr) String() string           { return fmt.Sprintf("NOT %s", e.Inner) }

// KindFilter matches folders or shortcuts
type KindFilter struct {
	Kind model.Kind
}

func (e *KindFilter) Matches(c Candidate) bool { return c.Item.Kind() == e.Kind }
func (e *KindFilter) String() string           { return "kind:" + string(e.Kind) }

// FieldFilter matches a substring of a shortcut field. Folders never match,
// except for icon which every item has.
type FieldFilter struct {
	Field string
	Value string
}

func (e *FieldFilter) Matches(c Candidate) bool {
	var got string
	switch e.Field {
	case FilterIcon:
		return c.Item.Common().Icon == e.Value
	case FilterTarget, FilterArgs:
		sc, ok := c.Item.(*model.Shortcut)
		if !ok {
			return false
		}
		got = sc.Target
		if e.Field == FilterArgs {
			got = sc.Args
		}
	}
	return strings.Contains(strings.ToLower(got), strings.ToLower(e.Value))
}

func (e *FieldFilter) String() string { return fmt.Sprintf("%s:%q", e.Field, e.Value) }

// InFilter matches items below a folder whose name contains Value
type InFilter struct {
	Value string
}

func (e *InFilter) Matches(c Candidate) bool {
	v := strings.ToLower(e.Value)
	for _, p := range c.Path {
		if strings.Contains(strings.ToLower(p), v) {
			return true
		}
	}
	return false
}

func (e *InFilter) String() string { return fmt.Sprintf("in:%q", e.Value) }

// CountFilter compares a number taken from the candidate
type CountFilter struct {
	Name  string
	Op    ComparisonOp
	Value int
	count func(Candidate) (int, bool)
}

// NewDepthFilter compares the number of folders above the item; HOME's
// children are at depth 0
func NewDepthFilter(op ComparisonOp, value string) (*CountFilter, error) {
	return newCountFilter(FilterDepth, op, value, func(c Candidate) (int, bool) {
		return len(c.Path), true
	})
}

// NewItemsFilter compares the number of children of a folder
func NewItemsFilter(op ComparisonOp, value string) (*CountFilter, error) {
	return newCountFilter(FilterItems, op, value, func(c Candidate) (int, bool) {
		f, ok := c.Item.(*model.Folder)
		if !ok {
			return 0, false
		}
		return f.Len(), true
	})
}

func newCountFilter(name string, op ComparisonOp, value string, count func(Candidate) (int, bool)) (*CountFilter, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, errors.Errorf("%w: %s needs a number, got %q", ErrInvalidQuery, name, value)
	}
	return &CountFilter{Name: name, Op: op, Value: n, count: count}, nil
}

func (e *CountFilter) Matches(c Candidate) bool {
	n, ok := e.count(c)
	return ok && e.Op.compare(n, e.Value)
}

func (e *CountFilter) String() string { return fmt.Sprintf("%s%s%d", e.Name, e.Op, e.Value) }

func (op ComparisonOp) compare(a, b int) bool {
	switch op {
	case OpNotEqual:
		return a != b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	default:
		return a == b
	}
}
