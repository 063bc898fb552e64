package core

import (
	"io"
	"iter"
	"strings"
)

// IndentMarker is repeated once per depth level in tree dumps.
const IndentMarker = "===>"

// Walk yields every element of the tree rooted at root with its depth,
// depth-first and pre-order. It reads the tree without mutating it, so the
// sequence can be ranged over any number of times.
func Walk(root Element) iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		if root == nil {
			return
		}
		walk(root, 0, yield)
	}
}

func walk(e Element, depth int, yield func(int, Element) bool) bool {
	if !yield(depth, e) {
		return false
	}
	for _, child := range e.Tree().Children {
		if !walk(child, depth+1, yield) {
			return false
		}
	}
	return true
}

// FormatLine renders one tree-dump line, e.g.
//
//	|===> <Paragraph class=btn-text id=4c1e0>
func FormatLine(depth int, e Element) string {
	n := e.Base()
	var sb strings.Builder
	sb.WriteByte('|')
	sb.WriteString(strings.Repeat(IndentMarker, depth))
	sb.WriteString(" <")
	sb.WriteString(n.Name())
	sb.WriteString(" class=")
	sb.WriteString(n.Class())
	sb.WriteString(" id=")
	sb.WriteString(n.ID())
	sb.WriteByte('>')
	return sb.String()
}

// FormatTree renders the tree rooted at root, one newline-terminated line
// per element.
func FormatTree(root Element) string {
	var sb strings.Builder
	_ = WriteTree(&sb, root)
	return sb.String()
}

// WriteTree writes the FormatTree output to w.
func WriteTree(w io.Writer, root Element) error {
	for depth, e := range Walk(root) {
		if _, err := io.WriteString(w, FormatLine(depth, e)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
