// Package domtree builds an in-memory document tree from a pulljson event
// stream. It exists only for tooling built on top of the zero-allocation
// core — a differential-fuzzing comparator and a YAML re-emitter — and is
// explicitly not held to the core packages' no-heap/no-recursion discipline.
package domtree

import (
	"fmt"

	"github.com/nanojson/pulljson/pulljson"
)

// Kind identifies which field of a Node is populated.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// Member is one key/value pair of an object, kept in source order.
type Member struct {
	Key   string
	Value *Node
}

// Node is one value in the materialized document tree.
type Node struct {
	Kind     Kind
	Members  []Member // KindObject
	Elements []*Node  // KindArray
	Str      string   // KindString
	Num      pulljson.Number
	Bool     bool // KindBool
}

// Build reads the root value of src into a full document tree. It stops
// once the root value is complete and does not pull the EndDocument
// event, so it does not check that the input ends there. It recurses
// once per nesting level of the input, which is fine for the tooling this package serves
// but is exactly the kind of unbounded call stack the core packages are
// built to avoid.
func Build(src pulljson.EventSource) (*Node, error) {
	ev, err := src.Next()
	if err != nil {
		return nil, err
	}
	return buildValue(src, ev)
}

func buildValue(src pulljson.EventSource, ev pulljson.Event) (*Node, error) {
	switch ev.Type {
	case pulljson.TypeStartObject:
		return buildObject(src)
	case pulljson.TypeStartArray:
		return buildArray(src)
	case pulljson.TypeString:
		return &Node{Kind: KindString, Str: string(ev.Text.Bytes)}, nil
	case pulljson.TypeNumber:
		return &Node{Kind: KindNumber, Num: ev.Num}, nil
	case pulljson.TypeBool:
		return &Node{Kind: KindBool, Bool: ev.Bool}, nil
	case pulljson.TypeNull:
		return &Node{Kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("domtree: unexpected event %v as a value", ev.Type)
	}
}

func buildObject(src pulljson.EventSource) (*Node, error) {
	n := &Node{Kind: KindObject}
	for {
		ev, err := src.Next()
		if err != nil {
			return nil, err
		}
		if ev.Type == pulljson.TypeEndObject {
			return n, nil
		}
		if ev.Type != pulljson.TypeKey {
			return nil, fmt.Errorf("domtree: expected key, got %v", ev.Type)
		}
		key := string(ev.Text.Bytes)
		valEv, err := src.Next()
		if err != nil {
			return nil, err
		}
		val, err := buildValue(src, valEv)
		if err != nil {
			return nil, err
		}
		n.Members = append(n.Members, Member{Key: key, Value: val})
	}
}

func buildArray(src pulljson.EventSource) (*Node, error) {
	n := &Node{Kind: KindArray}
	for {
		ev, err := src.Next()
		if err != nil {
			return nil, err
		}
		if ev.Type == pulljson.TypeEndArray {
			return n, nil
		}
		val, err := buildValue(src, ev)
		if err != nil {
			return nil, err
		}
		n.Elements = append(n.Elements, val)
	}
}

// ToAny converts the tree into plain Go values (map[string]any, []any,
// string, float64/int64, bool, nil) suitable for handing to a generic
// marshaler such as goccy/go-yaml.
func (n *Node) ToAny() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindObject:
		m := make(map[string]any, len(n.Members))
		for _, mem := range n.Members {
			m[mem.Key] = mem.Value.ToAny()
		}
		return m
	case KindArray:
		a := make([]any, len(n.Elements))
		for i, e := range n.Elements {
			a[i] = e.ToAny()
		}
		return a
	case KindString:
		return n.Str
	case KindNumber:
		if i, ok := n.Num.AsInt(); ok {
			return i
		}
		if f, ok := n.Num.AsFloat(); ok {
			return f
		}
		return n.Num.String()
	case KindBool:
		return n.Bool
	default:
		return nil
	}
}
