// internal/css/parser.go
package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser holds the state of the stylesheet scanner. It is a plain
// recursive-descent scanner with no backtracking; malformed constructs are
// skipped rather than reported.
type Parser struct {
	input string
	pos   int
}

func NewParser(input string) *Parser {
	return &Parser{input: input, pos: 0}
}

// Parse analyzes the input and builds a Stylesheet. Each rule's selectors
// come out sorted by descending specificity.
func (p *Parser) Parse() Stylesheet {
	var rules []Rule
	for {
		p.consumeWhitespace()
		if p.eof() {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}

		selectors := p.parseSelectors()
		if len(selectors) == 0 {
			p.skipTo('{')
			if !p.eof() && p.currentChar() == '{' {
				p.consumeChar()
				p.skipBlock('{', '}')
			}
			continue
		}

		declarations, err := p.parseDeclarations()
		if err != nil {
			continue
		}

		rule := Rule{Selectors: selectors, Declarations: declarations}
		rule.sortSelectors()
		rules = append(rules, rule)
	}
	return Stylesheet{Rules: rules}
}

// parseSelectors parses the comma-separated selector list before a block.
func (p *Parser) parseSelectors() []Selector {
	var selectors []Selector
	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '{' {
			break
		}

		sel, err := p.parseSimpleSelector()
		if err != nil {
			p.skipTo(',', '{')
		} else {
			selectors = append(selectors, sel)
		}

		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '{' {
			break
		}
		if p.currentChar() == ',' {
			p.consumeChar()
			continue
		}
		break
	}
	return selectors
}

// parseSimpleSelector parses one tag#id.class.class sequence.
func (p *Parser) parseSimpleSelector() (Selector, error) {
	selector := Selector{}

	if !p.eof() {
		ch := p.currentChar()
		if ch == '*' {
			p.consumeChar()
			selector.TagName = "*"
		} else if isValidIdentifierStart(ch) {
			selector.TagName = strings.ToLower(p.parseIdentifier())
		}
	}

loop:
	for !p.eof() {
		switch p.currentChar() {
		case '#':
			p.consumeChar()
			selector.ID = p.parseIdentifier()
		case '.':
			p.consumeChar()
			selector.Classes = append(selector.Classes, p.parseIdentifier())
		default:
			break loop
		}
	}

	if !selector.IsValid() && selector.TagName != "*" {
		return selector, fmt.Errorf("invalid simple selector")
	}
	return selector, nil
}

// parseDeclarations parses the content within { ... }.
func (p *Parser) parseDeclarations() ([]Declaration, error) {
	p.consumeWhitespace()
	if p.eof() || p.currentChar() != '{' {
		return nil, fmt.Errorf("expected '{' at start of declarations")
	}
	p.consumeChar()

	var declarations []Declaration
	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '}' {
			break
		}

		if p.startsWith("/*") {
			p.skipComment()
			continue
		}

		name, raw := p.parseDeclaration()
		if name != "" && raw != "" {
			declarations = append(declarations, Declaration{
				Name:  strings.ToLower(name),
				Value: parseValue(raw),
			})
		}
	}

	if !p.eof() && p.currentChar() == '}' {
		p.consumeChar()
	}
	return declarations, nil
}

// parseDeclaration parses a single 'property: value;' pair.
func (p *Parser) parseDeclaration() (name, value string) {
	if !isValidIdentifierStart(p.currentChar()) {
		p.skipTo(';', '}')
		if !p.eof() && p.currentChar() == ';' {
			p.consumeChar()
		}
		return
	}
	name = p.parseIdentifier()
	p.consumeWhitespace()

	if p.eof() || p.currentChar() != ':' {
		p.skipTo(';', '}')
		if !p.eof() && p.currentChar() == ';' {
			p.consumeChar()
		}
		return "", ""
	}
	p.consumeChar()
	p.consumeWhitespace()

	start := p.pos
	for !p.eof() {
		ch := p.currentChar()
		if ch == ';' || ch == '}' {
			break
		}
		p.pos++
	}
	value = strings.TrimSpace(p.input[start:p.pos])

	if !p.eof() && p.currentChar() == ';' {
		p.consumeChar()
	}
	return name, value
}

// parseValue classifies a raw value string as a color, a pixel length, or
// a keyword. Unrecognized shapes degrade to keywords; the consumers apply
// their documented defaults.
func parseValue(raw string) Value {
	if c, ok := ParseColor(raw); ok {
		return FromColor(c)
	}
	if strings.HasSuffix(raw, "px") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64); err == nil {
			return Length(f)
		}
	}
	return Keyword(raw)
}

// --- Lexer-like Helpers ---

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) currentChar() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) consumeChar() byte {
	ch := p.currentChar()
	if !p.eof() {
		p.pos++
	}
	return ch
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() && isWhitespace(p.currentChar()) {
		p.pos++
	}
}

func (p *Parser) startsWith(s string) bool {
	if p.pos+len(s) > len(p.input) {
		return false
	}
	return p.input[p.pos:p.pos+len(s)] == s
}

func (p *Parser) skipComment() {
	p.pos += 2
	endIndex := strings.Index(p.input[p.pos:], "*/")
	if endIndex == -1 {
		p.pos = len(p.input)
	} else {
		p.pos += endIndex + 2
	}
}

func (p *Parser) skipTo(targets ...byte) {
	for !p.eof() {
		ch := p.currentChar()
		for _, target := range targets {
			if ch == target {
				return
			}
		}
		p.pos++
	}
}

func (p *Parser) skipBlock(open, close byte) {
	depth := 1
	for !p.eof() {
		c := p.consumeChar()
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func (p *Parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isValidIdentifierChar(p.currentChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isValidIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}

func isValidIdentifierChar(ch byte) bool {
	return isValidIdentifierStart(ch) || (ch >= '0' && ch <= '9')
}
