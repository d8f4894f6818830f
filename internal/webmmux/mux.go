package webmmux

const (
	TrackVideo = 1
	TrackAudio = 2
)

// Muxer accumulates one video track and (optionally) one audio track into a
// single finalized WebM file, matching the consumer's usage in spec.md §4.4:
// one add_frame call per encoded packet, a single Finalize at end of
// session. Each frame becomes its own single-block Cluster — valid WebM,
// and simpler than batching multiple blocks per cluster since this muxer
// has no live-streaming latency budget to optimize for (unlike the example
// it's grounded on, which batches audio into the next video cluster to
// avoid stalling a live MSE player).
type Muxer struct {
	width, height uint32
	videoCodecID  string
	hasAudio      bool
	sampleRate    uint32
	channels      uint16

	clusters [][]byte
}

// New creates a muxer for a video track of the given dimensions and codec
// ("V_VP8" or "V_VP9").
func New(width, height uint32, videoCodecID string) *Muxer {
	return &Muxer{width: width, height: height, videoCodecID: videoCodecID}
}

// AddAudioTrack enables an Opus audio track at the given rate/channel count.
// Must be called before Finalize; per spec.md §4.4 this happens once during
// consumer initialization.
func (m *Muxer) AddAudioTrack(sampleRate uint32, channels uint16) {
	m.hasAudio = true
	m.sampleRate = sampleRate
	m.channels = channels
}

// AddVideoFrame appends one encoded video frame at presentation timestamp
// ptsNs (nanoseconds), per spec.md §4.4/§6.
func (m *Muxer) AddVideoFrame(data []byte, ptsNs uint64, keyframe bool) {
	m.addFrame(TrackVideo, data, ptsNs, keyframe)
}

// AddAudioFrame appends one encoded Opus frame at presentation timestamp
// ptsNs (nanoseconds).
func (m *Muxer) AddAudioFrame(data []byte, ptsNs uint64, keyframe bool) {
	m.addFrame(TrackAudio, data, ptsNs, keyframe)
}

func (m *Muxer) addFrame(trackNum int, data []byte, ptsNs uint64, keyframe bool) {
	tsMs := int64(ptsNs / 1_000_000)
	block := simpleBlock(trackNum, 0, keyframe, data)
	m.clusters = append(m.clusters, cluster(tsMs, block))
}

func simpleBlock(trackNum int, relMs int16, keyframe bool, data []byte) []byte {
	trackVint := vint(uint64(trackNum))
	var flags byte
	if keyframe {
		flags = 0x80
	}
	content := make([]byte, len(trackVint)+2+1+len(data))
	copy(content, trackVint)
	content[len(trackVint)] = byte(relMs >> 8)
	content[len(trackVint)+1] = byte(relMs)
	content[len(trackVint)+2] = flags
	copy(content[len(trackVint)+3:], data)
	return elem(idSimpleBlock, content)
}

func cluster(tsMs int64, blocks ...[]byte) []byte {
	tcElem := elem(idTimecode, uintBytes(uint64(tsMs)))
	body := concat(append([][]byte{tcElem}, blocks...)...)
	return elem(idCluster, body)
}

func opusHead(channels uint16, sampleRate uint32) []byte {
	head := make([]byte, 19)
	copy(head, []byte("OpusHead"))
	head[8] = 1 // version
	head[9] = byte(channels)
	head[10] = 0x38 // pre-skip = 312, LE
	head[11] = 0x01
	head[12] = byte(sampleRate)
	head[13] = byte(sampleRate >> 8)
	head[14] = byte(sampleRate >> 16)
	head[15] = byte(sampleRate >> 24)
	// bytes 16-17: output gain = 0, byte 18: channel mapping family = 0
	return head
}

// Finalize builds the complete WebM file: EBML header + Segment (known
// size) containing Info, Tracks, and every accumulated Cluster in order.
func (m *Muxer) Finalize() []byte {
	ebmlBody := concat(
		elem(idEBMLVersion, uintBytes(1)),
		elem(idEBMLReadVer, uintBytes(1)),
		elem(idEBMLMaxIDLen, uintBytes(4)),
		elem(idEBMLMaxSzLen, uintBytes(8)),
		elem(idDocType, []byte("webm")),
		elem(idDocTypeVer, uintBytes(2)),
		elem(idDocTypeRdVer, uintBytes(2)),
	)
	header := elem(idEBML, ebmlBody)

	infoBody := concat(
		elem(idTcScale, uintBytes(1_000_000)), // 1 ms per timecode unit
		elem(idMuxApp, []byte("screenrec")),
		elem(idWrtApp, []byte("screenrec")),
	)
	info := elem(idInfo, infoBody)

	videoBody := concat(
		elem(idPixelW, uintBytes(uint64(m.width))),
		elem(idPixelH, uintBytes(uint64(m.height))),
	)
	videoEntry := concat(
		elem(idTrackNum, uintBytes(TrackVideo)),
		elem(idTrackUID, uintBytes(1)),
		elem(idTrackType, uintBytes(1)),
		elem(idCodecID, []byte(m.videoCodecID)),
		elem(idVideo, videoBody),
	)
	tracksBody := elem(idTrackEntry, videoEntry)

	if m.hasAudio {
		audioBody := concat(
			elem(idSampFreq, floatBytes(float64(m.sampleRate))),
			elem(idChannels, uintBytes(uint64(m.channels))),
		)
		audioEntry := concat(
			elem(idTrackNum, uintBytes(TrackAudio)),
			elem(idTrackUID, uintBytes(2)),
			elem(idTrackType, uintBytes(2)),
			elem(idCodecID, []byte("A_OPUS")),
			elem(idCodecPrv, opusHead(m.channels, m.sampleRate)),
			elem(idAudio, audioBody),
		)
		tracksBody = concat(tracksBody, elem(idTrackEntry, audioEntry))
	}
	tracks := elem(idTracks, tracksBody)

	segmentBody := concat(append([][]byte{info, tracks}, m.clusters...)...)
	segment := elem(idSegment, segmentBody)

	return concat(header, segment)
}
