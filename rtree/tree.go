package rtree

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

/*
Tree is an R-tree indexing rectangles by integer key. It only supports
insertion: nodes split by moving their most recently added entries into a
new sibling, and the tree grows upwards when the root splits.

All nodes live in a single arena owned by the Tree and refer to each other by
NodeID, including the parent back-reference.

The zero value is an empty tree using DefaultMaxFill. A Tree is not safe for
concurrent use; callers sharing one between goroutines must serialize access
themselves.
*/
type Tree struct {
	opts   Options
	log    logrus.FieldLogger
	nodes  []node
	root   NodeID
	height int
	count  int
}

// NewRTree returns an empty tree with default options.
func NewRTree() *Tree {
	t := &Tree{}
	t.init()
	return t
}

// New returns an empty tree configured by opts.
func New(opts Options) (*Tree, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	t := &Tree{opts: opts}
	t.init()
	return t, nil
}

func (t *Tree) init() {
	if t.log != nil {
		return
	}
	t.opts = t.opts.normalized()
	t.log = t.opts.Logger
	t.root = NoParent
}

func (t *Tree) empty() bool {
	return len(t.nodes) == 0
}

// Insert adds rec to the tree. It fails only when rec.Rect is invalid, in
// which case the tree is left untouched.
func (t *Tree) Insert(rec Record) error {
	if err := rec.Rect.Validate(); err != nil {
		return errors.Wrapf(err, "insert key %d", rec.Key)
	}
	t.init()

	if t.empty() {
		t.root = t.newNode(KindLeaf, NoParent)
		t.node(t.root).bbox = rec.Rect
		t.height = 1
	}

	id := t.root
	for t.node(id).kind == KindBranch {
		id = t.chooseChild(id, rec.Rect)
	}
	t.insertLeaf(id, rec)
	t.count++
	return nil
}

// Len returns the number of records in the tree.
func (t *Tree) Len() int {
	return t.count
}

// NodeCount returns the number of leaves and branches.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// Height returns the number of levels, 0 for an empty tree.
func (t *Tree) Height() int {
	return t.height
}

// MaxFill returns the node capacity in use.
func (t *Tree) MaxFill() int {
	if t.opts.MaxFill == 0 {
		return DefaultMaxFill
	}
	return t.opts.MaxFill
}

// Root returns the id of the root node. ok is false for an empty tree.
func (t *Tree) Root() (id NodeID, ok bool) {
	if t.empty() {
		return NoParent, false
	}
	return t.root, true
}

// Bounds returns the bounding box of everything in the tree.
func (t *Tree) Bounds() (Rect, bool) {
	if t.empty() {
		return Rect{}, false
	}
	return t.node(t.root).bbox, true
}

func (t *Tree) String() string {
	bb, _ := t.Bounds()
	return fmt.Sprintf("rtree{records: %d, nodes: %d, height: %d, bounds: %s}",
		t.count, len(t.nodes), t.height, bb)
}
