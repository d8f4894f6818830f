// Command recorder is the minimal desktop-shell stand-in spec.md §1
// excludes from the core: it parses the handful of surface flags the core
// itself treats as fixed (spec.md §6), opens a display, and calls
// pipeline.Record, stopping on SIGINT/SIGTERM.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"screenrec/internal/config"
	"screenrec/internal/pipeline"
	"screenrec/internal/screencapture"
)

var (
	flagDisplay = pflag.String("display", "", "X11 display to capture (empty uses DISPLAY env)")
	flagOutDir  = pflag.String("target-dir", config.OutputDir, "directory recordings are written to")
	flagCodec   = pflag.String("codec", "vp9", "video codec: vp9 or vp8")
)

func main() {
	pflag.Parse()

	codec := config.VP9
	switch *flagCodec {
	case "vp9":
		codec = config.VP9
	case "vp8":
		codec = config.VP8
	default:
		log.Fatal("--codec must be vp9 or vp8", "got", *flagCodec)
	}

	display, err := screencapture.Open(*flagDisplay)
	if err != nil {
		log.Fatal("failed to open display", "err", err)
	}
	defer display.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sig
		log.Info("received signal, stopping recording", "signal", s)
		pipeline.StopRecord()
	}()

	log.Info("recording started", "display", *flagDisplay, "target", *flagOutDir, "codec", *flagCodec)

	if err := pipeline.RecordWithOptions(display, *flagOutDir, codec); err != nil {
		log.Fatal("recording session ended with error", "err", err)
	}
}
