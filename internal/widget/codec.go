package widget

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("widget: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("widget: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes a digest deterministically.
func Marshal(d *Digest) ([]byte, error) {
	data, err := encMode.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("widget: encode digest: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a digest. Unknown fields are ignored.
func Unmarshal(data []byte) (*Digest, error) {
	var d Digest
	if err := decMode.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("widget: decode digest: %w", err)
	}
	return &d, nil
}

// Encode writes one digest to w.
func Encode(w io.Writer, d *Digest) error {
	if err := encMode.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("widget: encode digest: %w", err)
	}
	return nil
}

// Decode reads one digest from r.
func Decode(r io.Reader) (*Digest, error) {
	var d Digest
	if err := decMode.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("widget: decode digest: %w", err)
	}
	return &d, nil
}

// Diagnose renders an encoded digest in CBOR diagnostic notation, for
// debugging payloads by eye.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
