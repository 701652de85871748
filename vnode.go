// Package tuicore provides a React-like declarative terminal UI core:
// virtual tree + reconciliation, a positional hook runtime, flexbox layout
// over a styled cell buffer, and a single-threaded event/frame loop.
package tuicore

import "fmt"

// Kind tags the semantic variant of a VNode.
type Kind int

const (
	KindRoot Kind = iota
	KindBox
	KindText
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBox:
		return "box"
	case KindText:
		return "text"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Props carries layout, visual style, and arbitrary component props for a
// node. Layout/style fields are read out with the Get*Prop helpers in
// layout.go rather than typed struct fields, keeping props as a plain map.
type Props map[string]any

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Component is a functional component: a pure function from props to a
// rendered VNode. It is run under a hook context supplied by the
// reconciler/registry (see hooks.go), not invoked directly by callers.
type Component func(props Props) VNode

// NodeKey is the stable identity the reconciler uses to match nodes across
// renders: an optional user key, a type identifier, and a positional index.
//
// Matching rule: if both sides carry a user key, they match when the user
// keys AND type ids are equal (index is ignored); otherwise they match only
// when type id and index are equal.
type NodeKey struct {
	UserKey *string
	TypeID  string
	Index   int
}

// KeysMatch implements the NodeKey matching rule.
func KeysMatch(a, b NodeKey) bool {
	if a.UserKey != nil && b.UserKey != nil {
		return a.TypeID == b.TypeID && *a.UserKey == *b.UserKey
	}
	return a.TypeID == b.TypeID && a.Index == b.Index
}

// String renders a NodeKey for diagnostics (hook-order panics, debug dumps).
func (k NodeKey) String() string {
	if k.UserKey != nil {
		return fmt.Sprintf("%s#%s", k.TypeID, *k.UserKey)
	}
	return fmt.Sprintf("%s@%d", k.TypeID, k.Index)
}

// VNode is a tagged virtual node: Root, Box, Text, or Component.
//
// Fields beyond Kind/TypeID are only meaningful for the corresponding kind:
// Text only for KindText, Component/fn only for KindComponent. Children is
// ordered; each child's Index is assigned from its position when it is
// attached to a parent via one of the builder functions below.
type VNode struct {
	Kind      Kind
	TypeID    string
	Text      string
	Component Component
	Props     Props
	Children  []VNode

	UserKey *string
	Index   int

	// ScrollX/ScrollY are the horizontal/vertical scroll offsets applied
	// when this node's overflow clips its children.
	ScrollX int
	ScrollY int
}

// Key returns this node's NodeKey as currently assigned.
func (v VNode) Key() NodeKey {
	return NodeKey{UserKey: v.UserKey, TypeID: v.TypeID, Index: v.Index}
}

// WithKey returns a copy of v with its user key set. Setting a user key
// replaces the positional component of the node's identity while
// preserving its type-id component.
func (v VNode) WithKey(key string) VNode {
	k := key
	v.UserKey = &k
	return v
}

// WithScroll returns a copy of v with horizontal/vertical scroll offsets set.
func (v VNode) WithScroll(x, y int) VNode {
	v.ScrollX = x
	v.ScrollY = y
	return v
}

// IsTextNode reports whether v is a text node.
func (v VNode) IsTextNode() bool { return v.Kind == KindText }

// withIndices assigns each child's positional Index from its slice
// position: adding a child assigns it an index equal to the current child
// count.
func withIndices(children []VNode) []VNode {
	out := make([]VNode, len(children))
	for i, c := range children {
		c.Index = i
		out[i] = c
	}
	return out
}

// Root builds a root node wrapping children.
func Root(children ...VNode) VNode {
	return VNode{Kind: KindRoot, TypeID: "root", Children: withIndices(children)}
}

// Box builds an intrinsic box (flex container) node.
func Box(props Props, children ...VNode) VNode {
	if props == nil {
		props = Props{}
	}
	return VNode{Kind: KindBox, TypeID: "box", Props: props, Children: withIndices(children)}
}

// Text builds a text node with the given styled props.
func Text(content string, props Props) VNode {
	if props == nil {
		props = Props{}
	}
	return VNode{Kind: KindText, TypeID: "text", Text: content, Props: props}
}

// Comp builds a component node. name identifies the component's semantic
// kind for reconciliation (the TypeID component of NodeKey) — component
// functions are not comparable across renders in Go, so the caller supplies
// a stable name (typically the component's Go function name).
func Comp(name string, fn Component, props Props, children ...VNode) VNode {
	if props == nil {
		props = Props{}
	}
	return VNode{
		Kind:      KindComponent,
		TypeID:    name,
		Component: fn,
		Props:     props,
		Children:  withIndices(children),
	}
}

// CollectTextContent concatenates the text content reachable from v,
// descending into box/component children.
func CollectTextContent(v VNode) string {
	if v.Kind == KindText {
		return v.Text
	}
	var out string
	for i, c := range v.Children {
		if i > 0 {
			out += "\n"
		}
		out += CollectTextContent(c)
	}
	return out
}
