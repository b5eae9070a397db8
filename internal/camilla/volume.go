package camilla

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Volume is the textual form of a volume value reported by the daemon.
// Numbers keep their JSON literal text, strings their content.
type Volume struct {
	text string
}

func (v Volume) String() string {
	return v.text
}

// parseVolume decodes the body of a GetVolume reply.
func parseVolume(body json.RawMessage) (Volume, error) {
	var reply struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return Volume{}, fmt.Errorf("%w: GetVolume is not an object: %w", ErrMalformedResponse, err)
	}
	if reply.Value == nil {
		return Volume{}, fmt.Errorf("%w: GetVolume has no value", ErrMalformedResponse)
	}

	dec := json.NewDecoder(bytes.NewReader(reply.Value))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return Volume{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	switch v := value.(type) {
	case json.Number:
		return Volume{text: v.String()}, nil
	case string:
		return Volume{text: v}, nil
	default:
		return Volume{}, fmt.Errorf("%w: unexpected value %s", ErrMalformedResponse, reply.Value)
	}
}
