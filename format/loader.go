// Package format decodes the three schematic containers (legacy MCEdit
// .schematic, Sponge .schem v2/v3, Litematica .litematic) into the unified
// voxel grid. Containers are NBT, optionally gzip-compressed; detection is
// by content, never by file extension.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/astei/schem2mesh/schematic"
)

var ErrUnknownFormat = errors.New("format: unrecognized schematic container")

// errSchemaMismatch signals that the payload is valid NBT but not this
// decoder's schema; Decode moves on to the next candidate.
var errSchemaMismatch = errors.New("format: schema mismatch")

// Decode reads a schematic in any supported container from r. Candidate
// decoders run from most to least distinctive schema: litematic, wrapped
// sponge, direct sponge, legacy. A decoder whose required fields are absent
// falls through; any other error aborts the decode.
func Decode(r io.Reader) (*schematic.Grid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("format: read input: %w", err)
	}

	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("format: open gzip stream: %w", err)
		}
		raw, err = io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("format: decompress: %w", err)
		}
		if err := gz.Close(); err != nil {
			return nil, fmt.Errorf("format: decompress: %w", err)
		}
	}

	for _, decode := range []func([]byte) (*schematic.Grid, error){
		decodeLitematic,
		decodeSpongeWrapped,
		decodeSponge,
		decodeLegacy,
	} {
		grid, err := decode(raw)
		if errors.Is(err, errSchemaMismatch) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return grid, nil
	}
	return nil, ErrUnknownFormat
}

// DecodeFile opens and decodes a schematic file.
func DecodeFile(path string) (*schematic.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
