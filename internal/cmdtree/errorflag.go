package cmdtree

// SetError marks a parse failure on n
func (n *Node) SetError() {
	n.errorFlag = true
}

// HasError reports whether n or any descendant has its error flag set
func (n *Node) HasError() bool {
	if n.errorFlag {
		return true
	}
	for _, child := range n.Children() {
		if child.HasError() {
			return true
		}
	}
	return false
}

// ClearError resets the error flag on n and all of its descendants.
// Call it on the root before every full-line parse.
func (n *Node) ClearError() {
	n.errorFlag = false
	for _, child := range n.Children() {
		child.ClearError()
	}
}
