package rtree

import "github.com/cockroachdb/errors"

// Validate walks the whole tree and checks its structural invariants: node
// capacity, non-empty branches holding a single kind of child, consistent
// parent links, tight bounding boxes, equal leaf depth and the record count.
func (t *Tree) Validate() error {
	if t.empty() {
		if t.count != 0 {
			return errors.AssertionFailedf("empty tree reports %d records", t.count)
		}
		return nil
	}
	if p := t.node(t.root).parent; p != NoParent {
		return errors.AssertionFailedf("root %d has parent %d", t.root, p)
	}

	maxFill := t.MaxFill()
	seen := make([]bool, len(t.nodes))
	leafDepth := -1
	records := 0

	err := t.Walk(func(v NodeView) error {
		if seen[v.ID] {
			return errors.AssertionFailedf("node %d reached twice", v.ID)
		}
		seen[v.ID] = true

		bb := emptyRect()
		switch v.Kind {
		case KindLeaf:
			if len(v.Records) > maxFill {
				return errors.AssertionFailedf("leaf %d holds %d records, max %d", v.ID, len(v.Records), maxFill)
			}
			if len(v.Children) != 0 {
				return errors.AssertionFailedf("leaf %d has children", v.ID)
			}
			if leafDepth == -1 {
				leafDepth = v.Depth
			} else if leafDepth != v.Depth {
				return errors.AssertionFailedf("leaf %d at depth %d, other leaves at %d", v.ID, v.Depth, leafDepth)
			}
			for _, rec := range v.Records {
				bb = bb.Union(rec.Rect)
			}
			records += len(v.Records)
		case KindBranch:
			if len(v.Children) == 0 {
				return errors.AssertionFailedf("branch %d is empty", v.ID)
			}
			if len(v.Children) > maxFill {
				return errors.AssertionFailedf("branch %d holds %d children, max %d", v.ID, len(v.Children), maxFill)
			}
			if len(v.Records) != 0 {
				return errors.AssertionFailedf("branch %d has records", v.ID)
			}
			kind := t.nodes[v.Children[0]].kind
			for _, c := range v.Children {
				child := t.node(c)
				if child.kind != kind {
					return errors.AssertionFailedf("branch %d mixes %s and %s children", v.ID, kind, child.kind)
				}
				if child.parent != v.ID {
					return errors.AssertionFailedf("node %d is under %d but points at parent %d", c, v.ID, child.parent)
				}
				bb = bb.Union(child.bbox)
			}
		default:
			return errors.AssertionFailedf("node %d has unknown kind %s", v.ID, v.Kind)
		}
		if bb != v.BBox {
			return errors.AssertionFailedf("node %d box %s, contents span %s", v.ID, v.BBox, bb)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for id, ok := range seen {
		if !ok {
			return errors.AssertionFailedf("node %d is not reachable from the root", id)
		}
	}
	if records != t.count {
		return errors.AssertionFailedf("tree holds %d records, counted %d", records, t.count)
	}
	if depth := leafDepth + 1; depth != t.height {
		return errors.AssertionFailedf("height is %d, leaves are on level %d", t.height, depth)
	}
	return nil
}
