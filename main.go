package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/golang/snappy"
	log "github.com/sirupsen/logrus"

	"rtree/cli"
	"rtree/gen"
	"rtree/render"
	"rtree/rtree"
)

const defaultAppName = "rtree"

var (
	numRecords  *int
	maxFill     *int
	coordRange  *float64
	rectSize    *float64
	source      *string
	seed        *int64
	format      *string
	noColor     *bool
	outPath     *string
	useSnappy   *bool
	plotPath    *string
	interactive *bool
	telnetAddr  *string
	logLevel    *string
)

func main() {
	setupFlags()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if *noColor {
		color.NoColor = true
	}

	count, err := parseSize(flag.Args(), *numRecords)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	src, err := gen.ParseSource(*source)
	if err != nil {
		log.Fatal(err)
	}
	opts := rtree.Options{MaxFill: *maxFill, Logger: log.StandardLogger()}
	cfg := gen.Config{Count: count, Range: *coordRange, Size: *rectSize}
	rnd := rand.New(rand.NewSource(*seed))

	if *telnetAddr != "" {
		log.WithField("addr", *telnetAddr).Info("serving telnet")
		h := &cli.TelnetHandler{Options: opts, Gen: cfg, Log: log.StandardLogger()}
		if err := cli.ListenAndServe(*telnetAddr, h); err != nil {
			log.Fatal(err)
		}
		return
	}

	tree, err := rtree.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	if *interactive {
		scanner := bufio.NewScanner(os.Stdin)
		demo := cli.NewCli(scanner, os.Stdout, tree, rnd)
		demo.SetGenConfig(cfg)
		if err := demo.Start(); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := seedTree(tree, src, rnd, cfg); err != nil {
		log.Fatal(err)
	}
	if *plotPath != "" {
		if err := render.Save(tree, *plotPath); err != nil {
			log.Fatal(err)
		}
		log.WithField("path", *plotPath).Info("plot saved")
	}
	if err := writeOutput(tree); err != nil {
		log.Fatal(err)
	}
}

func seedTree(tree *rtree.Tree, src gen.Source, rnd *rand.Rand, cfg gen.Config) error {
	recs, err := gen.Generate(src, rnd, cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	for _, rec := range recs {
		if err := tree.Insert(rec); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{
		"records": tree.Len(),
		"nodes":   tree.NodeCount(),
		"height":  tree.Height(),
		"source":  src,
		"elapsed": time.Since(start),
	}).Info("tree built")
	return nil
}

func writeOutput(tree *rtree.Tree) (err error) {
	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, ferr := os.Create(*outPath)
		if ferr != nil {
			return errors.Wrap(ferr, "create output")
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if *useSnappy {
		sw := snappy.NewBufferedWriter(w)
		defer func() {
			if cerr := sw.Close(); err == nil {
				err = errors.Wrap(cerr, "flush snappy stream")
			}
		}()
		w = sw
	}

	switch *format {
	case "json":
		return tree.Dump(w)
	case "outline":
		v := &rtree.Visualizer{Tree: tree}
		_, err := io.WriteString(w, v.Visualize())
		return err
	default:
		return errors.Newf("unknown format %q", *format)
	}
}

// parseSize reads the optional positional size argument, falling back to def.
func parseSize(args []string, def int) (int, error) {
	switch len(args) {
	case 0:
		return def, nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return 0, errors.Newf("invalid size %q", args[0])
		}
		return n, nil
	default:
		return 0, errors.Newf("expected at most one size argument, got %d", len(args))
	}
}

func setupFlags() {
	numRecords = flag.Int("records", gen.DefaultCount, "Amount of random records to insert.")
	maxFill = flag.Int("maxfill", rtree.DefaultMaxFill, "Records or children per node before it splits.")
	coordRange = flag.Float64("range", gen.DefaultRange, "Upper bound of the random origins.")
	rectSize = flag.Float64("side", gen.DefaultSize, "Side of every random rectangle.")
	source = flag.String("source", string(gen.Uniform), "Record source [uniform,geo].")
	seed = flag.Int64("seed", time.Now().UnixNano(), "Seed for the uniform source.")
	format = flag.String("format", "json", "Output format [json,outline].")
	noColor = flag.Bool("nocolor", false, "Disable colours in the outline format.")
	outPath = flag.String("out", "", "Write the output to this file instead of stdout.")
	useSnappy = flag.Bool("snappy", false, "Compress the output as a snappy framed stream.")
	plotPath = flag.String("plot", "", "Render node boxes to this png/svg file.")
	interactive = flag.Bool("i", false, "Start the interactive CLI instead of printing a tree.")
	telnetAddr = flag.String("telnet", "", "Serve the interactive CLI over telnet on this address, e.g. :3456.")
	logLevel = flag.String("loglevel", "info", "Log level [debug,info,warning,error].")
	flag.Usage = func() {
		name := defaultAppName
		if len(os.Args) > 0 && os.Args[0] != "" {
			name = filepath.Base(os.Args[0])
		}
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [size]\n\nArguments:\n", name)
		flag.PrintDefaults()
	}
	flag.Parse()
}
