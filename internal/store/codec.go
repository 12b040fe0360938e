package store

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"hexhaven/internal/engine"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Encode serialises a game state as zstd-compressed JSON.
func Encode(s *engine.State) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/4)), nil
}

// Decode is the inverse of Encode.
func Decode(data []byte) (*engine.State, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	var s engine.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	return &s, nil
}
