package runtime

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// voidElements never carry children and are self-closed in XHTML style,
// which legacy email clients parse more reliably than bare void tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid reports whether the tag is a void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// Serialize renders a node tree to markup. Text nodes and attribute values
// are HTML-escaped; raw nodes are written verbatim.
func Serialize(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case KindText:
		b.WriteString(html.EscapeString(n.Text))

	case KindRaw:
		b.WriteString(n.Text)

	case KindFragment:
		for _, child := range n.Children {
			writeNode(b, child)
		}

	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, attr := range n.Attrs {
			value, ok := attrValue(attr.Value)
			if !ok {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(attr.Key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(value))
			b.WriteByte('"')
		}
		if voidElements[n.Tag] {
			b.WriteString(" />")
			return
		}
		b.WriteByte('>')
		for _, child := range n.Children {
			writeNode(b, child)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

// attrValue stringifies an attribute value. Nil and false drop the
// attribute entirely, so conditional bindings like :disabled="expr" can
// omit attributes cleanly.
func attrValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case bool:
		if !t {
			return "", false
		}
		return "true", true
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}
