package cli

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/grect"

	"rtree/gen"
	"rtree/render"
	"rtree/rtree"
)

const (
	defaultRandCount = 10
	maxRandCount     = 100000
)

type Cli struct {
	scanner    *bufio.Scanner
	out        io.Writer
	tree       *rtree.Tree
	visualizer *rtree.Visualizer
	rnd        *rand.Rand
	gen        gen.Config
	prompt     bool
	allowPlot  bool
}

func NewCli(s *bufio.Scanner, out io.Writer, t *rtree.Tree, rnd *rand.Rand) *Cli {
	v := &rtree.Visualizer{
		Tree: t,
	}
	return &Cli{
		scanner:    s,
		out:        out,
		tree:       t,
		visualizer: v,
		rnd:        rnd,
		gen:        gen.DefaultConfig(),
		prompt:     true,
		allowPlot:  true,
	}
}

// SetGenConfig changes the range and size used by RAND.
func (c *Cli) SetGenConfig(cfg gen.Config) {
	c.gen = cfg
}

// DisablePlot makes PLOT refuse to write files. Remote sessions use it.
func (c *Cli) DisablePlot() {
	c.allowPlot = false
}

// Start reads commands until EXIT or the end of input.
func (c *Cli) Start() error {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if quit := c.processInput(c.scanner.Text()); quit {
			return nil
		}
		c.printPrompt()
	}
	return c.scanner.Err()
}

func (c *Cli) printHelp() {
	fmt.Fprint(c.out, `
R-Tree CLI

Available Commands:
  INSERT <key> <rect>  Insert a record; rect is "[top left],[bottom right]", WKT or GeoJSON
  RAND [n]             Insert n random records (default 10)
  DUMP                 Print the tree as JSON
  SHOW                 Print the tree as an outline
  STATS                Print record count, node count and height
  CHECK                Verify the tree invariants
  PLOT <file>          Render node boxes to a png/svg file
  HELP                 Show this message
  EXIT                 Terminate this session
`)
}

func (c *Cli) printPrompt() {
	if c.prompt {
		fmt.Fprint(c.out, "> ")
	}
}

// processInput runs one command line and reports whether the session should end.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return false
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "insert":
		c.processInsertCommand(fields[1:])
	case "rand":
		c.processRandCommand(fields[1:])
	case "dump":
		if err := c.tree.Dump(c.out); err != nil {
			fmt.Fprintln(c.out, err)
		}
	case "show":
		fmt.Fprint(c.out, c.visualizer.Visualize())
	case "stats":
		fmt.Fprintln(c.out, c.tree)
	case "check":
		if err := c.tree.Validate(); err != nil {
			fmt.Fprintf(c.out, "Invalid: %v\n", err)
			return false
		}
		fmt.Fprintln(c.out, "OK")
	case "plot":
		c.processPlotCommand(fields[1:])
	case "help":
		c.printHelp()
	case "exit":
		return true
	}
	return false
}

func (c *Cli) processInsertCommand(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: INSERT <key> <rect>")
		return
	}
	key, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid key %q\n", args[0])
		return
	}
	r, err := ParseRect(strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	if err := c.tree.Insert(rtree.Record{Rect: r, Key: key}); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Inserted key %d %s\n", key, r)
}

func (c *Cli) processRandCommand(args []string) {
	n := defaultRandCount
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 0 || n > maxRandCount {
			fmt.Fprintf(c.out, "Usage: RAND [n], n at most %d\n", maxRandCount)
			return
		}
	}
	cfg := c.gen
	cfg.Count = n
	recs, err := gen.Generate(gen.Uniform, c.rnd, cfg)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	base := c.tree.Len()
	for _, rec := range recs {
		rec.Key += base
		if err := c.tree.Insert(rec); err != nil {
			fmt.Fprintln(c.out, err)
			return
		}
	}
	fmt.Fprintf(c.out, "Inserted %d records\n", n)
}

func (c *Cli) processPlotCommand(args []string) {
	if !c.allowPlot {
		fmt.Fprintln(c.out, "PLOT is not available over telnet")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: PLOT <file>")
		return
	}
	if err := render.Save(c.tree, args[0]); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Saved %s\n", args[0])
}

// ParseRect reads a 2D rectangle with github.com/tidwall/grect. The first
// ordinate is top/bottom and the second left/right, so "[1 2],[3 4]" is
// top=1 left=2 bottom=3 right=4. A single point gives a zero-sized rect.
func ParseRect(s string) (rtree.Rect, error) {
	g := grect.Get(s)
	lo, hi := g.Min, g.Max
	if len(hi) == 0 {
		hi = lo
	}
	if len(lo) < 2 || len(hi) < 2 {
		return rtree.Rect{}, errors.Newf("cannot read a 2D rectangle from %q", s)
	}
	r := rtree.Rect{Top: lo[0], Left: lo[1], Bottom: hi[0], Right: hi[1]}
	if err := r.Validate(); err != nil {
		return rtree.Rect{}, err
	}
	return r, nil
}
