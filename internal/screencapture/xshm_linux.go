//go:build linux

package screencapture

/*
#cgo pkg-config: x11 xext xfixes
#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <X11/extensions/XShm.h>
#include <X11/extensions/Xfixes.h>
#include <sys/ipc.h>
#include <sys/shm.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	Display *display;
	Window root;
	XShmSegmentInfo shminfo;
	XImage *image;
	int width;
	int height;
} XShmCapturer;

static XShmCapturer* xshm_init(const char *display_name) {
	XShmCapturer *c = (XShmCapturer*)calloc(1, sizeof(XShmCapturer));
	if (!c) return NULL;

	c->display = XOpenDisplay(display_name);
	if (!c->display) { free(c); return NULL; }

	int screen = DefaultScreen(c->display);
	c->root = RootWindow(c->display, screen);
	c->width = DisplayWidth(c->display, screen);
	c->height = DisplayHeight(c->display, screen);

	c->image = XShmCreateImage(c->display,
		DefaultVisual(c->display, screen),
		DefaultDepth(c->display, screen),
		ZPixmap, NULL, &c->shminfo,
		c->width, c->height);
	if (!c->image) {
		XCloseDisplay(c->display);
		free(c);
		return NULL;
	}

	c->shminfo.shmid = shmget(IPC_PRIVATE,
		c->image->bytes_per_line * c->image->height,
		IPC_CREAT | 0600);
	if (c->shminfo.shmid < 0) {
		XDestroyImage(c->image);
		XCloseDisplay(c->display);
		free(c);
		return NULL;
	}

	c->shminfo.shmaddr = c->image->data = (char*)shmat(c->shminfo.shmid, NULL, 0);
	c->shminfo.readOnly = False;

	if (!XShmAttach(c->display, &c->shminfo)) {
		shmdt(c->shminfo.shmaddr);
		shmctl(c->shminfo.shmid, IPC_RMID, NULL);
		XDestroyImage(c->image);
		XCloseDisplay(c->display);
		free(c);
		return NULL;
	}

	shmctl(c->shminfo.shmid, IPC_RMID, NULL);

	return c;
}

static int xshm_grab(XShmCapturer *c) {
	if (!XShmGetImage(c->display, c->root, c->image, 0, 0, AllPlanes)) {
		return -1;
	}
	XSync(c->display, False);
	return 0;
}

static void xshm_composite_cursor(XShmCapturer *c) {
	XFixesCursorImage *cursor = XFixesGetCursorImage(c->display);
	if (!cursor) return;

	int cx = cursor->x - cursor->xhot;
	int cy = cursor->y - cursor->yhot;

	for (int y = 0; y < (int)cursor->height; y++) {
		int dy = cy + y;
		if (dy < 0 || dy >= c->height) continue;
		for (int x = 0; x < (int)cursor->width; x++) {
			int dx = cx + x;
			if (dx < 0 || dx >= c->width) continue;

			unsigned long pixel = cursor->pixels[y * cursor->width + x];
			unsigned char a = (pixel >> 24) & 0xFF;
			if (a == 0) continue;

			unsigned char cr = (pixel >> 0) & 0xFF;
			unsigned char cg = (pixel >> 8) & 0xFF;
			unsigned char cb = (pixel >> 16) & 0xFF;

			int offset = dy * c->image->bytes_per_line + dx * 4;
			unsigned char *dst = (unsigned char*)c->image->data + offset;

			if (a == 255) {
				dst[0] = cb;
				dst[1] = cg;
				dst[2] = cr;
			} else {
				dst[0] = (cb * a + dst[0] * (255 - a)) / 255;
				dst[1] = (cg * a + dst[1] * (255 - a)) / 255;
				dst[2] = (cr * a + dst[2] * (255 - a)) / 255;
			}
		}
	}
	XFree(cursor);
}

static void xshm_destroy(XShmCapturer *c) {
	if (!c) return;
	XShmDetach(c->display, &c->shminfo);
	shmdt(c->shminfo.shmaddr);
	XDestroyImage(c->image);
	XCloseDisplay(c->display);
	free(c);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// XShmDisplay captures frames via X11 shared memory, the same cgo pattern
// the teacher repo uses in internal/capture/xshm_linux.go, trimmed of its
// NvFBC/CUDA GPU path and debug-image conversion (see DESIGN.md).
type XShmDisplay struct {
	c *C.XShmCapturer
}

// Open initializes XShm capture against the named X display (empty string
// uses the default).
func Open(displayName string) (*XShmDisplay, error) {
	var cDisplay *C.char
	if displayName != "" {
		cDisplay = C.CString(displayName)
		defer C.free(unsafe.Pointer(cDisplay))
	}

	c := C.xshm_init(cDisplay)
	if c == nil {
		return nil, fmt.Errorf("screencapture: failed to open XShm display %q", displayName)
	}
	return &XShmDisplay{c: c}, nil
}

func (d *XShmDisplay) Width() int  { return int(d.c.width) }
func (d *XShmDisplay) Height() int { return int(d.c.height) }

// Stride returns XShm's actual bytes_per_line, which may exceed Width()*4
// when the X server pads rows to a word boundary.
func (d *XShmDisplay) Stride() int { return int(d.c.image.bytes_per_line) }

// ScaleFactor is always 1.0 under XShm: X11 reports the backing pixel
// buffer at native resolution, no HiDPI scale factor to fold in.
func (d *XShmDisplay) ScaleFactor() float64 { return 1.0 }

// CaptureBytes grabs one frame (with the system cursor composited in) and
// copies it out of the shared-memory segment, since the segment is reused
// on the next grab.
func (d *XShmDisplay) CaptureBytes() ([]byte, error) {
	if C.xshm_grab(d.c) != 0 {
		return nil, fmt.Errorf("screencapture: XShmGetImage failed")
	}
	C.xshm_composite_cursor(d.c)

	size := int(d.c.image.bytes_per_line) * int(d.c.height)
	return C.GoBytes(unsafe.Pointer(d.c.image.data), C.int(size)), nil
}

func (d *XShmDisplay) Close() {
	C.xshm_destroy(d.c)
}
