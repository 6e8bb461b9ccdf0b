package search

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// ErrInvalidQuery is returned for queries that do not parse
var ErrInvalidQuery = errors.Base("invalid query")

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFuzzy  // ~term
	TokenFilter // key:value
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// Filter keywords
const (
	FilterKind   = "kind"
	FilterTarget = "target"
	FilterArgs   = "args"
	FilterIcon   = "icon"
	FilterIn     = "in"
	FilterDepth  = "d"
	FilterItems  = "items"
)

var filterAliases = map[string]string{
	"kind":   FilterKind,
	"k":      FilterKind,
	"target": FilterTarget,
	"t":      FilterTarget,
	"path":   FilterTarget,
	"args":   FilterArgs,
	"icon":   FilterIcon,
	"in":     FilterIn,
	"d":      FilterDepth,
	"depth":  FilterDepth,
	"items":  FilterItems,
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	switch ch := t.input[t.pos]; ch {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '+':
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return Token{Type: TokenText, Value: t.readQuoted()}
	case '~':
		t.pos++
		if t.pos < len(t.input) && t.input[t.pos] == '"' {
			return Token{Type: TokenFuzzy, Value: t.readQuoted()}
		}
		return Token{Type: TokenFuzzy, Value: t.readWord()}
	case '/':
		return t.readRegex()
	default:
		word := t.readWord()
		if key, value, ok := strings.Cut(word, ":"); ok {
			if _, known := filterAliases[strings.ToLower(key)]; known {
				// key:"quoted value"
				if value == "" && t.pos < len(t.input) && t.input[t.pos] == '"' {
					value = t.readQuoted()
				}
				return Token{Type: TokenFilter, Value: strings.ToLower(key) + ":" + value}
			}
		}
		return Token{Type: TokenText, Value: word}
	}
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && (t.input[t.pos] == ' ' || t.input[t.pos] == '\t') {
		t.pos++
	}
}

// readQuoted reads a "..." string; an unterminated quote runs to the end
func (t *Tokenizer) readQuoted() string {
	t.pos++ // opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++
	}
	return value
}

func (t *Tokenizer) readWord() string {
	start := t.pos
	for t.pos < len(t.input) && !strings.ContainsRune(" \t()|\"", rune(t.input[t.pos])) {
		t.pos++
	}
	return t.input[start:t.pos]
}

// readRegex reads /pattern/; \/ escapes a slash
func (t *Tokenizer) readRegex() Token {
	t.pos++
	var sb strings.Builder
	for t.pos < len(t.input) && t.input[t.pos] != '/' {
		if t.input[t.pos] == '\\' && t.pos+1 < len(t.input) && t.input[t.pos+1] == '/' {
			t.pos++
		}
		sb.WriteByte(t.input[t.pos])
		t.pos++
	}
	if t.pos < len(t.input) {
		t.pos++
	}
	return Token{Type: TokenRegex, Value: sb.String()}
}

// Parser builds a FilterExpr from tokens. Precedence from loose to tight:
// "|", then "+" or juxtaposition, then "-".
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over tokens ending in TokenEOF
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseQuery parses a query such as `kind:shortcut (doom | quake) -in:Old`.
// An empty query matches everything.
func ParseQuery(query string) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()
	if len(tokens) == 1 {
		return AlwaysMatchExpr{}, nil
	}

	p := NewParser(tokens)
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, errors.Errorf("%w: unexpected %q", ErrInvalidQuery, tok.Value)
	}
	return expr, nil
}

func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Type: TokenEOF}
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current().Type {
		case TokenEOF, TokenOr, TokenRParen:
			return left, nil
		case TokenAnd:
			p.advance()
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{Left: left, Right: right}
	}
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.current().Type == TokenNot {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Inner: inner}, nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	tok := p.current()
	switch tok.Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenRParen {
			return nil, errors.Errorf("%w: missing )", ErrInvalidQuery)
		}
		p.advance()
		return expr, nil
	case TokenText:
		p.advance()
		return NewTextExpr(tok.Value), nil
	case TokenFuzzy:
		p.advance()
		return NewFuzzyExpr(tok.Value), nil
	case TokenRegex:
		p.advance()
		re, err := NewRegexExpr(tok.Value)
		if err != nil {
			return nil, err
		}
		return re, nil
	case TokenFilter:
		p.advance()
		return parseFilterValue(tok.Value)
	case TokenEOF:
		return nil, errors.Errorf("%w: unexpected end of query", ErrInvalidQuery)
	default:
		return nil, errors.Errorf("%w: unexpected %q", ErrInvalidQuery, tok.Value)
	}
}

// parseFilterValue turns "key:criteria" into a filter
func parseFilterValue(value string) (FilterExpr, error) {
	key, criteria, _ := strings.Cut(value, ":")
	switch filterAliases[key] {
	case FilterKind:
		switch strings.ToLower(criteria) {
		case "folder", "f":
			return &KindFilter{Kind: model.KindFolder}, nil
		case "shortcut", "s":
			return &KindFilter{Kind: model.KindShortcut}, nil
		}
		return nil, errors.Errorf("%w: kind is folder or shortcut, got %q", ErrInvalidQuery, criteria)
	case FilterTarget:
		return &FieldFilter{Field: FilterTarget, Value: criteria}, nil
	case FilterArgs:
		return &FieldFilter{Field: FilterArgs, Value: criteria}, nil
	case FilterIcon:
		return &FieldFilter{Field: FilterIcon, Value: criteria}, nil
	case FilterIn:
		return &InFilter{Value: criteria}, nil
	case FilterDepth, FilterItems:
		op, n := parseComparison(criteria)
		newFilter := NewDepthFilter
		if filterAliases[key] == FilterItems {
			newFilter = NewItemsFilter
		}
		f, err := newFilter(op, n)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, errors.Errorf("%w: unknown filter %q", ErrInvalidQuery, key)
}

// parseComparison splits ">=3" into its operator and value; no operator means equal
func parseComparison(criteria string) (ComparisonOp, string) {
	for _, op := range []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual} {
		if rest, ok := strings.CutPrefix(criteria, string(op)); ok {
			return op, rest
		}
	}
	return OpEqual, criteria
}
