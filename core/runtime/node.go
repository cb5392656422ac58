package runtime

// NodeKind discriminates the node variants produced by render functions.
type NodeKind int

const (
	// KindElement is a markup element with a tag, attributes and children.
	KindElement NodeKind = iota
	// KindText is character data, escaped during serialization.
	KindText
	// KindRaw is verbatim markup written without escaping (comments,
	// pre-rendered HTML).
	KindRaw
	// KindFragment groups children without emitting markup of its own.
	KindFragment
)

// Attr is a single element attribute. Values are kept as native Go values
// until serialization so component instantiation can receive typed props.
type Attr struct {
	Key   string
	Value any
}

// Node is one node of a rendered component tree. Trees are built by render
// functions and consumed by the App, which expands component-name elements
// and serializes the result.
type Node struct {
	Kind     NodeKind
	Tag      string // element tag, component name before expansion
	Attrs    []Attr // ordering preserved through serialization
	Children []*Node
	Text     string // payload for text and raw nodes
}

// Element creates an element node.
func Element(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Attrs: attrs, Children: children}
}

// Text creates an escaped text node.
func Text(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Raw creates a verbatim markup node. The content is serialized unescaped,
// so it must come from a trusted source.
func Raw(markup string) *Node {
	return &Node{Kind: KindRaw, Text: markup}
}

// Fragment groups nodes without a wrapping element.
func Fragment(children ...*Node) *Node {
	return &Node{Kind: KindFragment, Children: children}
}

// Append adds children to the node and returns it for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// SetAttr sets an attribute, replacing an existing value for the same key
// while keeping its original position.
func (n *Node) SetAttr(key string, value any) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
}

// Attr returns the value of the named attribute, or nil when absent.
func (n *Node) Attr(key string) any {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			return n.Attrs[i].Value
		}
	}
	return nil
}
