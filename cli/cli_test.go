package cli

import (
	"bufio"
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"rtree/rtree"
)

func run(t *testing.T, tree *rtree.Tree, input string) string {
	t.Helper()
	var out bytes.Buffer
	c := NewCli(bufio.NewScanner(strings.NewReader(input)), &out, tree, rand.New(rand.NewSource(1)))
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestInsertAndCheck(t *testing.T) {
	color.NoColor = true
	tree := rtree.NewRTree()
	out := run(t, tree, strings.Join([]string{
		"INSERT 1 [0 0],[1 1]",
		"insert 2 [2 2],[3 3]",
		"INSERT 3 [4 4],[5 5]",
		"INSERT 4 [6 6],[7 7]",
		"CHECK",
		"STATS",
		"SHOW",
	}, "\n"))

	for _, want := range []string{
		"Inserted key 1 [0, 0, 1, 1]",
		"Inserted key 4 [6, 6, 7, 7]",
		"OK",
		"records: 4, nodes: 3, height: 2",
		"branch #1 [0, 0, 7, 7]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if tree.Len() != 4 {
		t.Errorf("tree has %d records", tree.Len())
	}
}

func TestBadInput(t *testing.T) {
	tree := rtree.NewRTree()
	out := run(t, tree, strings.Join([]string{
		"INSERT",
		"INSERT x [0 0],[1 1]",
		"INSERT 1 []",
		"RAND -3",
		"FLY",
	}, "\n"))
	for _, want := range []string{
		"Usage: INSERT <key> <rect>",
		`Invalid key "x"`,
		"cannot read a 2D rectangle",
		"Usage: RAND [n]",
		`Unknown command "fly"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if tree.Len() != 0 {
		t.Errorf("bad input inserted %d records", tree.Len())
	}
}

func TestRandRejectsHugeCount(t *testing.T) {
	tree := rtree.NewRTree()
	out := run(t, tree, "RAND 1000000000000000000\nRAND 100001\n")
	if n := strings.Count(out, "Usage: RAND [n], n at most 100000"); n != 2 {
		t.Errorf("got %d usage lines:\n%s", n, out)
	}
	if tree.Len() != 0 {
		t.Errorf("tree has %d records", tree.Len())
	}
}

func TestRandDumpPlotExit(t *testing.T) {
	tree := rtree.NewRTree()
	path := filepath.Join(t.TempDir(), "tree.png")
	out := run(t, tree, strings.Join([]string{
		"RAND 25",
		"RAND",
		"DUMP",
		"PLOT " + path,
		"EXIT",
		"RAND 1000",
	}, "\n"))

	if tree.Len() != 35 {
		t.Errorf("tree has %d records, want 35", tree.Len())
	}
	if err := tree.Validate(); err != nil {
		t.Error(err)
	}
	for _, want := range []string{"Inserted 25 records", `"tree": {`, "Saved " + path} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestParseRect(t *testing.T) {
	tests := []struct {
		in   string
		want rtree.Rect
	}{
		{"[1 2],[3 4]", rtree.Rect{Top: 1, Left: 2, Bottom: 3, Right: 4}},
		{"[3 4],[1 2]", rtree.Rect{Top: 1, Left: 2, Bottom: 3, Right: 4}},
		{"LINESTRING(0 0, 2 5)", rtree.Rect{Top: 0, Left: 0, Bottom: 2, Right: 5}},
		{`{"type":"MultiPoint","coordinates":[[1,2],[3,4],[-1,0]]}`, rtree.Rect{Top: -1, Left: 0, Bottom: 3, Right: 4}},
	}
	for _, tt := range tests {
		got, err := ParseRect(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseRect("[7]"); err == nil {
		t.Error("1D rect should be rejected")
	}
}
