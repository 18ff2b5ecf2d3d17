package ast

import "fmt"

// String returns a print-friendly string of Node n, including its payload and
// resolved type (if the checker has already annotated it).
func (n *Node) String() string {
	if n == nil {
		return "---> [NIL POINTER]"
	}
	s := n.TypeName()
	if n.Data != nil {
		s = fmt.Sprintf("%s [%v]", s, n.Data)
	}
	if n.Entry != nil {
		s = fmt.Sprintf("%s : %s", s, n.Entry)
	}
	return s
}

// Print recursively prints n and its Children, indenting by depth.
func (n *Node) Print(depth int) {
	if depth < 0 {
		depth = 0
	}
	if n == nil {
		fmt.Printf("%*c%s\n", depth<<1, ' ', "---> NIL")
		return
	}
	fmt.Printf("%*c%s\n", depth<<1, ' ', n.String())
	for _, c := range n.Children {
		c.Print(depth + 1)
	}
}
