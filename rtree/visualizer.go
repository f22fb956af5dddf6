package rtree

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const indentStr = "  "

var (
	branchColor = color.New(color.FgCyan, color.Bold)
	leafColor   = color.New(color.FgGreen)
	keyColor    = color.New(color.FgYellow)
	boxColor    = color.New(color.Faint)
)

// Visualizer renders a Tree as an indented outline, one node or record per line.
// Colours follow github.com/fatih/color and are dropped when color.NoColor is set.
type Visualizer struct {
	Tree *Tree
}

// Visualize returns the outline of v.Tree, or "(empty)" for an empty tree.
func (v *Visualizer) Visualize() string {
	if v.Tree == nil || v.Tree.empty() {
		return "(empty)\n"
	}
	var sb strings.Builder
	_ = v.Tree.Walk(func(n NodeView) error {
		indent := strings.Repeat(indentStr, n.Depth)
		tag := leafColor
		if n.Kind == KindBranch {
			tag = branchColor
		}
		fmt.Fprintf(&sb, "%s%s #%d %s\n", indent, tag.Sprint(n.Kind), n.ID, boxColor.Sprint(n.BBox))
		for _, rec := range n.Records {
			fmt.Fprintf(&sb, "%s%skey=%s %s\n", indent, indentStr, keyColor.Sprint(rec.Key), rec.Rect)
		}
		return nil
	})
	return sb.String()
}
