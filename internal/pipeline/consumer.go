package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"screenrec/internal/audiotap"
	"screenrec/internal/config"
	"screenrec/internal/opuscodec"
	"screenrec/internal/vpxcodec"
	"screenrec/internal/webmmux"
)

// consumer owns the reorder buffer, both encoders, and the muxer — the only
// stage confined to one goroutine (spec.md §4.4/§5).
type consumer struct {
	video *vpxcodec.Encoder
	audio *opuscodec.Encoder
	mux   *webmmux.Muxer

	audioConfig audiotap.AudioConfig

	reorder *reorderBuffer

	outputDir string
}

func newConsumer(width, height int, codec config.VideoCodec, audioCfg audiotap.AudioConfig, outputDir string) (*consumer, error) {
	vc := vpxcodec.VP9
	if codec == config.VP8 {
		vc = vpxcodec.VP8
	}
	videoEnc, err := vpxcodec.New(width, height, config.VideoBitrate, vc)
	if err != nil {
		return nil, fmt.Errorf("pipeline: video encoder: %w", err)
	}

	audioEnc, err := opuscodec.New(audioCfg.SampleRate, int(audioCfg.EncodeChannel), config.AudioBitrate)
	if err != nil {
		videoEnc.Close()
		return nil, fmt.Errorf("pipeline: audio encoder: %w", err)
	}

	codecID := "V_VP9"
	if codec == config.VP8 {
		codecID = "V_VP8"
	}
	mux := webmmux.New(uint32(width), uint32(height), codecID)
	mux.AddAudioTrack(audioCfg.SampleRate, uint16(audioCfg.EncodeChannel))

	return &consumer{
		video:       videoEnc,
		audio:       audioEnc,
		mux:         mux,
		audioConfig: audioCfg,
		reorder:     newReorderBuffer(),
		outputDir:   outputDir,
	}, nil
}

// run drains in until it closes, emitting packets to the encoders in
// strictly increasing seq order (spec.md §4.4 invariant 2), then finalizes
// the muxer and writes the output file.
func (c *consumer) run(in <-chan AVPacket) error {
	for pkt := range in {
		for _, ready := range c.reorder.Push(pkt) {
			if err := c.emit(ready); err != nil {
				// Fatal error: unwind Producer -> Converters -> Consumer via
				// queue closure (spec.md §7). Stopping RECORDING makes the
				// producer exit its loop and close Q1 on its next iteration;
				// draining `in` keeps this goroutine alive to receive
				// whatever the converter pool still has in flight instead of
				// leaving those goroutines blocked on a send forever.
				recording.Store(false)
				drain(in)
				return err
			}
		}
	}

	frames, err := c.video.Finish()
	if err != nil {
		return fmt.Errorf("pipeline: video encoder finish: %w", err)
	}
	for _, f := range frames {
		c.mux.AddVideoFrame(f.Data, uint64(f.PTS)*1_000_000, f.Key)
	}

	return c.finalize()
}

func (c *consumer) emit(pkt AVPacket) error {
	frames, err := c.video.Encode(int64(pkt.Ms), pkt.VideoData)
	if err != nil {
		return fmt.Errorf("pipeline: video encoder: %w", err)
	}
	for _, f := range frames {
		c.mux.AddVideoFrame(f.Data, uint64(f.PTS)*1_000_000, f.Key)
	}

	if len(pkt.AudioData) > 0 {
		c.emitAudio(pkt)
	}

	return nil
}

// isAudioKeyframe asserts synthetic 1Hz keyframes for the audio track's
// seek-table scaffolding, per spec.md §4.4.
func isAudioKeyframe(seq uint64) bool {
	return seq == 0 || seq%config.FPS == 0
}

func (c *consumer) emitAudio(pkt AVPacket) {
	isKeyframe := isAudioKeyframe(pkt.Seq)
	ptsNs := pkt.Ms * 1_000_000

	if !opuscodec.IsValidFrameSize(len(pkt.AudioData), c.audioConfig.SampleRate, int(c.audioConfig.EncodeChannel)) {
		c.mux.AddAudioFrame(c.audio.Silence(), ptsNs, false)
		return
	}

	encoded, err := c.audio.Encode(pkt.AudioData)
	if err != nil {
		log.Warn("pipeline: audio encode failed, substituting silence", "seq", pkt.Seq, "err", err)
		c.mux.AddAudioFrame(c.audio.Silence(), ptsNs, false)
		return
	}
	c.mux.AddAudioFrame(encoded, ptsNs, isKeyframe)
}

// finalize writes the muxed output to target/<UTC y-m-d H:M:S>.webm, per
// spec.md §4.4 step 3 and §6.
func (c *consumer) finalize() error {
	data := c.mux.Finalize()

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return fmt.Errorf("pipeline: create output dir: %w", err)
	}

	path := filepath.Join(c.outputDir, outputFilename(time.Now()))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pipeline: write output file: %w", err)
	}
	log.Info("pipeline: session finalized", "path", path)
	return nil
}

func (c *consumer) close() {
	c.video.Close()
}

// drain discards every packet still arriving on in until it closes, so the
// converter pool (and, transitively, the producer) never blocks forever on
// a send with no reader left.
func drain(in <-chan AVPacket) {
	for range in {
	}
}

// outputFilename formats the UTC session-end time per spec.md §4.4/§6:
// "%Y-%m-%d %H:%M:%S".webm.
func outputFilename(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05") + ".webm"
}
