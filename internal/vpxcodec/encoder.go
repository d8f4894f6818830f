// Package vpxcodec wraps libvpx for VP8/VP9 encoding. The cgo shape below —
// an opaque C struct holding codec state plus exported init/encode/destroy
// functions — mirrors the teacher repo's encode.go cgo encoder, retargeted
// from libavcodec (H.264/H.265) to libvpx (VP8/VP9) since spec.md mandates
// the latter pair.
package vpxcodec

/*
#cgo pkg-config: vpx
#include <vpx/vpx_encoder.h>
#include <vpx/vp8cx.h>
#include <vpx/vpx_image.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	vpx_codec_ctx_t ctx;
	vpx_image_t *img;
	vpx_codec_iter_t iter; // output iterator, reset by every encode/flush call
	int width;
	int height;
} Encoder;

static Encoder* vpx_encoder_init(int width, int height, int bitrate_kbps, int is_vp9) {
	Encoder *e = (Encoder*)calloc(1, sizeof(Encoder));
	if (!e) return NULL;

	e->width = width;
	e->height = height;

	vpx_codec_iface_t *iface = is_vp9 ? vpx_codec_vp9_cx() : vpx_codec_vp8_cx();

	vpx_codec_enc_cfg_t cfg;
	if (vpx_codec_enc_config_default(iface, &cfg, 0) != VPX_CODEC_OK) {
		free(e);
		return NULL;
	}

	cfg.g_w = width;
	cfg.g_h = height;
	cfg.g_timebase.num = 1;
	cfg.g_timebase.den = 1000;
	cfg.rc_target_bitrate = bitrate_kbps;
	cfg.g_lag_in_frames = 0;
	cfg.g_error_resilient = VPX_ERC_FLAG_PARTITIONS;

	if (vpx_codec_enc_init(&e->ctx, iface, &cfg, 0) != VPX_CODEC_OK) {
		free(e);
		return NULL;
	}

	e->img = vpx_img_alloc(NULL, VPX_IMG_FMT_I420, width, height, 1);
	if (!e->img) {
		vpx_codec_destroy(&e->ctx);
		free(e);
		return NULL;
	}

	return e;
}

// copies a planar I420 buffer (Y, then U, then V, concatenated) into the
// codec's image planes, respecting its own (possibly padded) stride.
static void vpx_encoder_load_i420(Encoder *e, const uint8_t *yuv) {
	int w = e->width, h = e->height;
	const uint8_t *y = yuv;
	const uint8_t *u = yuv + w * h;
	const uint8_t *v = u + (w / 2) * (h / 2);

	for (int row = 0; row < h; row++) {
		memcpy(e->img->planes[VPX_PLANE_Y] + row * e->img->stride[VPX_PLANE_Y],
			y + row * w, w);
	}
	for (int row = 0; row < h / 2; row++) {
		memcpy(e->img->planes[VPX_PLANE_U] + row * e->img->stride[VPX_PLANE_U],
			u + row * (w / 2), w / 2);
		memcpy(e->img->planes[VPX_PLANE_V] + row * e->img->stride[VPX_PLANE_V],
			v + row * (w / 2), w / 2);
	}
}

static int vpx_encoder_encode(Encoder *e, const uint8_t *yuv, long pts) {
	vpx_encoder_load_i420(e, yuv);
	e->iter = NULL;
	vpx_codec_err_t err = vpx_codec_encode(&e->ctx, e->img, (vpx_codec_pts_t)pts, 1, 0, VPX_DL_REALTIME);
	return err == VPX_CODEC_OK ? 0 : -1;
}

// vpx_encoder_flush signals end-of-stream so the codec drains any delayed frames.
static int vpx_encoder_flush(Encoder *e) {
	e->iter = NULL;
	vpx_codec_err_t err = vpx_codec_encode(&e->ctx, NULL, 0, 0, 0, VPX_DL_REALTIME);
	return err == VPX_CODEC_OK ? 0 : -1;
}

// vpx_encoder_next_packet polls for the next encoded frame since the last
// encode/flush call. Returns 1 if a frame was produced, 0 if none is pending.
static int vpx_encoder_next_packet(Encoder *e, const uint8_t **data, size_t *size, long *pts, int *is_key) {
	const vpx_codec_cx_pkt_t *pkt;
	while ((pkt = vpx_codec_get_cx_data(&e->ctx, &e->iter)) != NULL) {
		if (pkt->kind == VPX_CODEC_CX_FRAME_PKT) {
			*data = pkt->data.frame.buf;
			*size = pkt->data.frame.sz;
			*pts = (long)pkt->data.frame.pts;
			*is_key = (pkt->data.frame.flags & VPX_FRAME_IS_KEY) ? 1 : 0;
			return 1;
		}
	}
	return 0;
}

static void vpx_encoder_destroy(Encoder *e) {
	if (!e) return;
	if (e->img) vpx_img_free(e->img);
	vpx_codec_destroy(&e->ctx);
	free(e);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Codec selects which VPx encoder to instantiate.
type Codec int

const (
	VP9 Codec = iota
	VP8
)

// Frame is one encoded output packet, matching spec.md §4.4's `f.pts`/`f.key`.
type Frame struct {
	Data []byte
	PTS  int64
	Key  bool
}

// Encoder wraps a libvpx encoding context for one video track.
type Encoder struct {
	e *C.Encoder
}

// New creates a VP8/VP9 encoder at the given dimensions, timebase 1/1000,
// and bitrate (kbps), per spec.md §4.4.
func New(width, height, bitrateKbps int, codec Codec) (*Encoder, error) {
	isVP9 := C.int(0)
	if codec == VP9 {
		isVP9 = 1
	}
	e := C.vpx_encoder_init(C.int(width), C.int(height), C.int(bitrateKbps), isVP9)
	if e == nil {
		return nil, fmt.Errorf("vpxcodec: failed to initialize libvpx encoder")
	}
	return &Encoder{e: e}, nil
}

// Encode submits one I420 frame at presentation timestamp ptsMs and returns
// every encoded packet libvpx has ready (VPx encoders may delay output by a
// few frames even in realtime mode).
func (enc *Encoder) Encode(ptsMs int64, i420 []byte) ([]Frame, error) {
	if C.vpx_encoder_encode(enc.e, (*C.uint8_t)(unsafe.Pointer(&i420[0])), C.long(ptsMs)) != 0 {
		return nil, fmt.Errorf("vpxcodec: encode failed")
	}
	return enc.drain(), nil
}

// Finish flushes the encoder and returns any remaining buffered frames, per
// spec.md §4.4 step 3's drain-on-closure behavior.
func (enc *Encoder) Finish() ([]Frame, error) {
	if C.vpx_encoder_flush(enc.e) != 0 {
		return nil, fmt.Errorf("vpxcodec: flush failed")
	}
	return enc.drain(), nil
}

func (enc *Encoder) drain() []Frame {
	var frames []Frame
	for {
		var data *C.uint8_t
		var size C.size_t
		var pts C.long
		var isKey C.int

		ret := C.vpx_encoder_next_packet(enc.e, &data, &size, &pts, &isKey)
		if ret != 1 {
			break
		}
		frames = append(frames, Frame{
			Data: C.GoBytes(unsafe.Pointer(data), C.int(size)),
			PTS:  int64(pts),
			Key:  isKey != 0,
		})
	}
	return frames
}

// Close releases the encoder's native resources.
func (enc *Encoder) Close() {
	C.vpx_encoder_destroy(enc.e)
}
