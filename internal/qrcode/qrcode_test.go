package qrcode_test

import (
	"bytes"
	"testing"

	"hexhaven/internal/qrcode"
)

func TestJoinURL(t *testing.T) {
	got := qrcode.JoinURL("http://table.local:8080/", "a b")
	if want := "http://table.local:8080/join?game=a+b"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPNG(t *testing.T) {
	png, err := qrcode.PNG(qrcode.JoinURL("http://localhost:8080", "g1"))
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}
}
