package handlers

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
)

func TestProcessImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	t.Run("png converts to jpeg", func(t *testing.T) {
		out, err := processImage(bytes.NewReader(buf.Bytes()), "photo.png")
		if err != nil {
			t.Fatalf("processImage failed: %v", err)
		}
		// JPEG SOI marker
		if len(out) < 2 || out[0] != 0xFF || out[1] != 0xD8 {
			t.Errorf("output is not JPEG data")
		}
	})

	t.Run("unsupported extension rejected", func(t *testing.T) {
		_, err := processImage(bytes.NewReader(buf.Bytes()), "photo.gif")
		if err == nil {
			t.Error("processImage accepted a gif")
		}
	})

	t.Run("corrupt data rejected", func(t *testing.T) {
		_, err := processImage(strings.NewReader("not an image"), "photo.jpg")
		if err == nil {
			t.Error("processImage accepted corrupt data")
		}
	})
}

func TestDataURI(t *testing.T) {
	uri := dataURI([]byte{0xFF, 0xD8})
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Errorf("dataURI = %q", uri)
	}
}
