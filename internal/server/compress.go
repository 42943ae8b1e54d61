package server

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/paulmach/orb/geojson"
)

// encoder compresses layer payloads. EncodeAll is safe for concurrent use.
type encoder struct {
	zstd *zstd.Encoder
}

func newEncoder() (*encoder, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &encoder{zstd: enc}, nil
}

// encode marshals fc and compresses the result.
func (e *encoder) encode(fc *geojson.FeatureCollection) (*Payload, error) {
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return &Payload{
		JSON: data,
		Zstd: e.zstd.EncodeAll(data, make([]byte, 0, len(data)/4)),
	}, nil
}

func (e *encoder) Close() error {
	return e.zstd.Close()
}

// acceptsZstd reports whether an Accept-Encoding header allows zstd.
func acceptsZstd(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "zstd") {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}
