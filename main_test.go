package main

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"

	"rtree/gen"
	"rtree/rtree"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{nil, 1000, false},
		{[]string{"25"}, 25, false},
		{[]string{"0"}, 0, false},
		{[]string{"many"}, 0, true},
		{[]string{"-1"}, 0, true},
		{[]string{"1", "2"}, 0, true},
	}
	for _, tt := range tests {
		got, err := parseSize(tt.args, 1000)
		if (err != nil) != tt.wantErr {
			t.Errorf("%v: err = %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v: got %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestWriteSnappyDump(t *testing.T) {
	tree := rtree.NewRTree()
	if err := seedTree(tree, gen.Uniform, rand.New(rand.NewSource(2)), gen.Config{Count: 40, Range: 100, Size: 10}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "dump.sz")
	jsonFormat, compress := "json", true
	format, outPath, useSnappy = &jsonFormat, &path, &compress
	if err := writeOutput(tree); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var got struct {
		Tree *rtree.NodeDump `json:"tree"`
	}
	if err := json.NewDecoder(snappy.NewReader(f)).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if n := len(got.Tree.Entries()); n != 40 {
		t.Errorf("dump has %d entries, want 40", n)
	}
}
