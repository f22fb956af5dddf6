package cli

import (
	"bufio"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/reiver/go-oi"
	"github.com/reiver/go-telnet"
	"github.com/sirupsen/logrus"

	"rtree/gen"
	"rtree/rtree"
)

// TelnetHandler serves the CLI over telnet. Every connection gets its own
// tree, so sessions never share state.
type TelnetHandler struct {
	Options rtree.Options
	Gen     gen.Config
	Log     logrus.FieldLogger

	sessions atomic.Int64
}

// longWriter retries short writes the way telnet writers need.
type longWriter struct {
	w telnet.Writer
}

func (lw longWriter) Write(p []byte) (int, error) {
	n, err := oi.LongWrite(lw.w, p)
	return int(n), err
}

func writeString(log logrus.FieldLogger, w telnet.Writer, s string) {
	if _, err := oi.LongWriteString(w, s); err != nil {
		log.WithError(err).Debug("telnet write failed")
	}
}

// ServeTELNET implements telnet.Handler.
func (h *TelnetHandler) ServeTELNET(ctx telnet.Context, w telnet.Writer, r telnet.Reader) {
	session := h.sessions.Add(1)
	log := h.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("session", session)

	tree, err := rtree.New(h.Options)
	if err != nil {
		log.WithError(err).Error("create tree")
		writeString(log, w, err.Error()+"\n")
		return
	}
	log.Info("session opened")

	c := NewCli(bufio.NewScanner(r), longWriter{w}, tree, rand.New(rand.NewSource(time.Now().UnixNano())))
	c.DisablePlot()
	if h.Gen.Count != 0 || h.Gen.Range != 0 || h.Gen.Size != 0 {
		c.SetGenConfig(h.Gen)
	}
	if err := c.Start(); err != nil {
		log.WithError(err).Warn("session read error")
	}
	writeString(log, w, "Closing...\n")
	log.WithField("records", tree.Len()).Info("session closed")
}

// ListenAndServe accepts telnet connections on addr until it fails.
func ListenAndServe(addr string, h *TelnetHandler) error {
	return telnet.ListenAndServe(addr, h)
}
