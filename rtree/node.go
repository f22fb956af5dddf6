package rtree

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"rtree/internal/invariants"
)

// NodeID identifies a node within one Tree. Ids are handed out in creation
// order starting at 0 and double as the node's index in the tree's arena.
type NodeID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Kind tells leaves and branches apart.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

/*
node is either a leaf holding records or a branch holding child node ids.
Only the slice matching kind is ever populated. parent is a plain index into
the arena, so moving a node between branches is a matter of rewriting ids.
*/
type node struct {
	id       NodeID
	kind     Kind
	parent   NodeID
	bbox     Rect
	records  []Record
	children []NodeID
}

func (n *node) size() int {
	if n.kind == KindLeaf {
		return len(n.records)
	}
	return len(n.children)
}

// newNode allocates a node in the arena. Pointers into t.nodes obtained before
// the call must not be used after it.
func (t *Tree) newNode(kind Kind, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		id:     id,
		kind:   kind,
		parent: parent,
		bbox:   emptyRect(),
	})
	return id
}

func (t *Tree) node(id NodeID) *node {
	return &t.nodes[id]
}

// calculateBoundingBox recomputes the box of id from its contents, then does
// the same for every ancestor up to the root.
func (t *Tree) calculateBoundingBox(id NodeID) {
	for id != NoParent {
		n := t.node(id)
		bb := emptyRect()
		if n.kind == KindLeaf {
			for _, rec := range n.records {
				bb = bb.Union(rec.Rect)
			}
		} else {
			for _, c := range n.children {
				bb = bb.Union(t.nodes[c].bbox)
			}
		}
		n.bbox = bb
		id = n.parent
	}
}

// chooseChild returns the child of branch id needing the least expansion to
// enclose r. Ties go to the first child seen; a child that already encloses r
// ends the scan.
func (t *Tree) chooseChild(id NodeID, r Rect) NodeID {
	children := t.node(id).children
	best := children[0]
	bestCost := t.nodes[best].bbox.Expansion(r)
	if bestCost == 0 {
		return best
	}
	for _, c := range children[1:] {
		cost := t.nodes[c].bbox.Expansion(r)
		if cost < bestCost {
			best, bestCost = c, cost
			if cost == 0 {
				break
			}
		}
	}
	return best
}

// insertLeaf stores rec in leaf id, splitting when it is already full.
func (t *Tree) insertLeaf(id NodeID, rec Record) {
	n := t.node(id)
	if len(n.records) < t.opts.MaxFill {
		n.records = append(n.records, rec)
		t.calculateBoundingBox(id)
		return
	}
	t.splitLeaf(id, rec)
}

/*
splitLeaf keeps the first MaxFill/2+1 records in leaf id and moves the rest,
last first, into a new sibling leaf together with rec. The sibling is then
handed to the parent, which may split in turn.
*/
func (t *Tree) splitLeaf(id NodeID, rec Record) {
	splitI := t.opts.MaxFill/2 + 1

	t.reroot(id)

	parent := t.node(id).parent
	sib := t.newNode(KindLeaf, parent)

	n, s := t.node(id), t.node(sib)
	for len(n.records) > splitI {
		last := len(n.records) - 1
		s.records = append(s.records, n.records[last])
		n.records = n.records[:last]
	}
	s.records = append(s.records, rec)

	t.calculateBoundingBox(id)
	t.calculateBoundingBox(sib)

	t.log.WithFields(logrus.Fields{
		"node":    id,
		"sibling": sib,
		"parent":  parent,
		"kind":    KindLeaf,
	}).Debug("split")

	t.add(parent, sib)
}

// add attaches child to branch id, splitting the branch when it is full.
func (t *Tree) add(id, child NodeID) {
	t.assertHomogeneous(id, child)

	t.node(child).parent = id
	n := t.node(id)
	if len(n.children) < t.opts.MaxFill {
		n.children = append(n.children, child)
		t.calculateBoundingBox(id)
		return
	}
	t.splitBranch(id, child)
}

/*
splitBranch keeps the first MaxFill/2 children in branch id and moves the
rest, last first, into a new sibling branch together with child. Every moved
node is re-parented to the sibling before the sibling is added upwards.
*/
func (t *Tree) splitBranch(id, child NodeID) {
	splitI := t.opts.MaxFill / 2

	t.reroot(id)

	parent := t.node(id).parent
	sib := t.newNode(KindBranch, parent)

	n, s := t.node(id), t.node(sib)
	for len(n.children) > splitI {
		last := len(n.children) - 1
		moved := n.children[last]
		s.children = append(s.children, moved)
		n.children = n.children[:last]
		t.nodes[moved].parent = sib
	}
	s.children = append(s.children, child)
	t.nodes[child].parent = sib

	t.calculateBoundingBox(id)
	t.calculateBoundingBox(sib)

	t.log.WithFields(logrus.Fields{
		"node":    id,
		"sibling": sib,
		"parent":  parent,
		"kind":    KindBranch,
	}).Debug("split")

	t.add(parent, sib)
}

// reroot puts a new branch above id if id is the root. This is the only way
// the tree grows taller.
func (t *Tree) reroot(id NodeID) {
	if t.node(id).parent != NoParent {
		return
	}
	if id != t.root {
		t.assertionFailed(errors.AssertionFailedf("node %d has no parent but root is %d", id, t.root))
	}
	newRoot := t.newNode(KindBranch, NoParent)
	t.add(newRoot, id)
	t.root = newRoot
	t.height++

	t.log.WithFields(logrus.Fields{
		"root":   newRoot,
		"child":  id,
		"height": t.height,
	}).Debug("reroot")
}

// assertHomogeneous checks that child has the same kind as the children
// already under branch id.
func (t *Tree) assertHomogeneous(id, child NodeID) {
	n := t.node(id)
	if n.kind != KindBranch {
		t.assertionFailed(errors.AssertionFailedf("adding node %d to %s %d", child, n.kind, id))
		return
	}
	if len(n.children) == 0 {
		return
	}
	if want, got := t.nodes[n.children[0]].kind, t.nodes[child].kind; want != got {
		t.assertionFailed(errors.AssertionFailedf(
			"branch %d holds %s nodes, cannot add %s %d", id, want, got, child))
	}
}

// assertionFailed panics in invariants builds and logs otherwise.
func (t *Tree) assertionFailed(err error) {
	if invariants.Enabled {
		panic(err)
	}
	t.log.WithError(err).Error("rtree invariant violated")
}
