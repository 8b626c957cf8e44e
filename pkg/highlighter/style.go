package highlighter

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Style is an inline style declaration. Keys may be camelCase ("backgroundColor") or
// kebab-case ("background-color"); empty values are skipped.
type Style map[string]string

var upperRe = regexp.MustCompile(`[A-Z]`)

func toKebabCase(property string) string {
	kebab := upperRe.ReplaceAllStringFunc(property, func(m string) string {
		return "-" + strings.ToLower(m)
	})
	if strings.HasPrefix(kebab, "ms-") {
		kebab = "-" + kebab
	}
	return kebab
}

// String serialises the declaration with properties sorted by name
func (s Style) String() string {
	props := make([]string, 0, len(s))
	values := make(map[string]string, len(s))
	for k, v := range s {
		if v == "" {
			continue
		}
		prop := toKebabCase(k)
		props = append(props, prop)
		values[prop] = v
	}
	sort.Strings(props)

	var b strings.Builder
	for i, prop := range props {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(values[prop])
		b.WriteByte(';')
	}
	return b.String()
}

// applyInlineStyle replaces the element's style attribute with s
func applyInlineStyle(n *html.Node, s Style) {
	removeAttr(n, "style")
	if decl := s.String(); decl != "" {
		setAttr(n, "style", decl)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}
