// internal/style/style.go
package style

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/fresco/internal/css"
	"github.com/xkilldash9x/fresco/internal/dom"
)

// Display enumerates the supported display modes.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

// StyledNode pairs a DOM node with its cascaded property map. The tree
// mirrors the document's child order one-to-one (minus nodes that are
// neither elements nor text) and is immutable after Resolve returns.
type StyledNode struct {
	Node            *html.Node
	SpecifiedValues map[string]css.Value
	Children        []*StyledNode
}

// Value returns the cascaded value for a property, if any.
func (sn *StyledNode) Value(name string) (css.Value, bool) {
	v, ok := sn.SpecifiedValues[name]
	return v, ok
}

// Lookup returns the value of name, falling back to fallbackName (the
// shorthand form), then to def.
func (sn *StyledNode) Lookup(name, fallbackName string, def css.Value) css.Value {
	if v, ok := sn.SpecifiedValues[name]; ok {
		return v
	}
	if v, ok := sn.SpecifiedValues[fallbackName]; ok {
		return v
	}
	return def
}

// Display resolves the display property. Unrecognized or absent values
// default to inline.
func (sn *StyledNode) Display() Display {
	if v, ok := sn.Value("display"); ok && v.Kind == css.KeywordValue {
		switch v.Keyword {
		case "block":
			return DisplayBlock
		case "none":
			return DisplayNone
		}
	}
	return DisplayInline
}

// Color returns the property's value as a color, if it cascaded to one.
func (sn *StyledNode) Color(name string) (css.Color, bool) {
	if v, ok := sn.Value(name); ok && v.Kind == css.ColorValue {
		return v.Color, true
	}
	return css.Color{}, false
}

// IsText reports whether the node is a text leaf.
func (sn *StyledNode) IsText() bool {
	return sn.Node.Type == html.TextNode
}

// Resolve runs the cascade over the document tree and returns the parallel
// styled tree. It is a pure function: resolving the same (document,
// stylesheet) pair twice yields identical property maps.
func Resolve(node *html.Node, sheet *css.Stylesheet) *StyledNode {
	sn := &StyledNode{
		Node:            node,
		SpecifiedValues: map[string]css.Value{},
	}
	if node.Type == html.ElementNode {
		sn.SpecifiedValues = specifiedValues(node, sheet)
	}
	if node.Type == html.TextNode {
		// Text leaves carry no properties and no children.
		return sn
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode && c.Type != html.TextNode {
			continue
		}
		sn.Children = append(sn.Children, Resolve(c, sheet))
	}
	return sn
}

// matchedRule records a rule together with the specificity of its
// highest-priority matching selector.
type matchedRule struct {
	specificity css.Specificity
	rule        *css.Rule
}

// specifiedValues applies every matching rule's declarations in ascending
// specificity order, so higher-specificity declarations overwrite lower
// ones and source order breaks ties.
func specifiedValues(elem *html.Node, sheet *css.Stylesheet) map[string]css.Value {
	values := map[string]css.Value{}
	matched := matchingRules(elem, sheet)

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].specificity.Less(matched[j].specificity)
	})
	for _, m := range matched {
		for _, decl := range m.rule.Declarations {
			values[decl.Name] = decl.Value
		}
	}
	return values
}

func matchingRules(elem *html.Node, sheet *css.Stylesheet) []matchedRule {
	var matched []matchedRule
	for i := range sheet.Rules {
		if m, ok := matchRule(elem, &sheet.Rules[i]); ok {
			matched = append(matched, m)
		}
	}
	return matched
}

// matchRule finds the rule's first matching selector. Selectors are kept
// sorted by descending specificity, so this is the rule's best match.
func matchRule(elem *html.Node, rule *css.Rule) (matchedRule, bool) {
	for _, sel := range rule.Selectors {
		if Matches(elem, sel) {
			return matchedRule{specificity: sel.Specificity(), rule: rule}, true
		}
	}
	return matchedRule{}, false
}

// Matches tests a simple selector against an element: tag, id, and every
// class must all agree.
func Matches(elem *html.Node, sel css.Selector) bool {
	if elem.Type != html.ElementNode {
		return false
	}
	if sel.TagName != "" && sel.TagName != "*" && !strings.EqualFold(elem.Data, sel.TagName) {
		return false
	}
	if sel.ID != "" {
		id, ok := dom.ID(elem)
		if !ok || id != sel.ID {
			return false
		}
	}
	for _, class := range sel.Classes {
		if !dom.HasClass(elem, class) {
			return false
		}
	}
	return true
}
