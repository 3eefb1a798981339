package utils

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestDecodePhotoDataURIBareBase64(t *testing.T) {
	t.Parallel()

	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	data, contentType, err := DecodePhotoDataURI(base64.StdEncoding.EncodeToString(raw), 1024)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(data, raw) {
		t.Fatalf("decoded bytes differ from input")
	}
	if contentType != "image/jpeg" {
		t.Fatalf("expected default content type image/jpeg, got %s", contentType)
	}
}

func TestDecodePhotoDataURIWithPrefix(t *testing.T) {
	t.Parallel()

	raw := []byte{0x89, 0x50, 0x4E, 0x47}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	data, contentType, err := DecodePhotoDataURI(payload, 1024)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(data, raw) {
		t.Fatalf("decoded bytes differ from input")
	}
	if contentType != "image/png" {
		t.Fatalf("expected content type image/png, got %s", contentType)
	}
}

func TestDecodePhotoDataURIMalformedPrefix(t *testing.T) {
	t.Parallel()

	if _, _, err := DecodePhotoDataURI("data:image/png;base64", 1024); err == nil {
		t.Fatal("expected error for data URI without comma")
	}
}

func TestDecodePhotoDataURIInvalidBase64(t *testing.T) {
	t.Parallel()

	if _, _, err := DecodePhotoDataURI("not base64 at all!!!", 1024); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestDecodePhotoDataURIEmptyPayload(t *testing.T) {
	t.Parallel()

	if _, _, err := DecodePhotoDataURI("", 1024); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestDecodePhotoDataURISizeCap(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("a", 4096)
	payload := base64.StdEncoding.EncodeToString([]byte(big))
	if _, _, err := DecodePhotoDataURI(payload, 1024); err == nil {
		t.Fatal("expected error for payload above the size cap")
	}

	small := base64.StdEncoding.EncodeToString([]byte("ok"))
	if _, _, err := DecodePhotoDataURI(small, 1024); err != nil {
		t.Fatalf("expected payload under the cap to decode, got %v", err)
	}
}
