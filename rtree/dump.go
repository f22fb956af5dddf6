package rtree

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

// RecordDump is one leaf entry of a dump.
type RecordDump struct {
	Key       int        `json:"key"`
	Rectangle [4]float64 `json:"rectangle"`
}

// NodeDump is the diagnostic form of a node. Leaves fill Records, branches
// fill Children. Boxes and rectangles are [top, left, bottom, right].
type NodeDump struct {
	Type        string       `json:"type"`
	ID          NodeID       `json:"id"`
	BoundingBox [4]float64   `json:"bounding-box"`
	Records     []RecordDump `json:"records,omitempty"`
	Children    []*NodeDump  `json:"children,omitempty"`
}

// Snapshot copies the tree into its diagnostic form. It returns nil for an
// empty tree.
func (t *Tree) Snapshot() *NodeDump {
	if t.empty() {
		return nil
	}
	return t.snapshot(t.root)
}

func (t *Tree) snapshot(id NodeID) *NodeDump {
	n := t.node(id)
	d := &NodeDump{
		Type:        n.kind.String(),
		ID:          n.id,
		BoundingBox: n.bbox.Ordinates(),
	}
	for _, rec := range n.records {
		d.Records = append(d.Records, RecordDump{Key: rec.Key, Rectangle: rec.Rect.Ordinates()})
	}
	for _, c := range n.children {
		d.Children = append(d.Children, t.snapshot(c))
	}
	return d
}

// Dump writes the tree as indented JSON under a top level "tree" key. The
// layout is meant for humans and tests, not as a stable format.
func (t *Tree) Dump(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Tree *NodeDump `json:"tree"`
	}{t.Snapshot()}); err != nil {
		return errors.Wrap(err, "dump rtree")
	}
	return nil
}

// Entries flattens the leaf entries of d in dump order.
func (d *NodeDump) Entries() []RecordDump {
	if d == nil {
		return nil
	}
	out := append([]RecordDump(nil), d.Records...)
	for _, c := range d.Children {
		out = append(out, c.Entries()...)
	}
	return out
}
