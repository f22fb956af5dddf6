package rtree

// NodeView is a read-only look at one node during Walk. The slices alias the
// tree's storage and must not be modified or retained past the callback.
type NodeView struct {
	ID       NodeID
	Kind     Kind
	Parent   NodeID
	Depth    int
	BBox     Rect
	Records  []Record
	Children []NodeID
}

// Walk calls fn for every node, parents before children and children in
// order. Returning an error from fn stops the walk and returns that error.
func (t *Tree) Walk(fn func(NodeView) error) error {
	if t.empty() {
		return nil
	}
	return t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeView) error) error {
	n := t.node(id)
	if err := fn(NodeView{
		ID:       n.id,
		Kind:     n.kind,
		Parent:   n.parent,
		Depth:    depth,
		BBox:     n.bbox,
		Records:  n.records,
		Children: n.children,
	}); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := t.walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Records returns every stored record in leaf order.
func (t *Tree) Records() []Record {
	out := make([]Record, 0, t.count)
	_ = t.Walk(func(v NodeView) error {
		out = append(out, v.Records...)
		return nil
	})
	return out
}
