// Package qrcode renders join links as QR images for phones.
package qrcode

import (
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const size = 256

// JoinURL is the link a phone opens to take a seat in gameID.
func JoinURL(base, gameID string) string {
	return strings.TrimRight(base, "/") + "/join?game=" + url.QueryEscape(gameID)
}

// PNG encodes link as a QR code.
func PNG(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, size)
}
