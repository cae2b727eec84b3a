package types

import (
	"encoding/json"
	"fmt"
)

// CodecName is the grpc content-subtype carried by JSONCodec.
const CodecName = "json"

// JSONCodec encodes grpc messages as JSON so the service messages stay plain
// Go structs shared with the REST surface.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

func (JSONCodec) Name() string {
	return CodecName
}
