package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"

	"github.com/spf13/afero"
)

// DefaultPath is the sample file the speed tests read when none is configured.
const DefaultPath = "data.int32"

// Load reads the whole file at path and decodes it as native-endian int32 values.
func Load(fsys afero.Fs, path string) (Sample, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Sample{}, &LoadError{Path: path, Kind: ErrNotFound, Err: err}
		}
		return Sample{}, &LoadError{Path: path, Kind: ErrIO, Err: err}
	}
	return Decode(path, data)
}

// Decode converts raw bytes into a Sample. The name is only used in errors.
func Decode(name string, data []byte) (Sample, error) {
	if len(data)%ElementSize != 0 {
		return Sample{}, &LoadError{
			Path: name,
			Kind: ErrDecode,
			Err:  fmt.Errorf("length %d is not a multiple of %d", len(data), ElementSize),
		}
	}

	values := make([]int32, len(data)/ElementSize)
	for i := range values {
		values[i] = int32(binary.NativeEndian.Uint32(data[i*ElementSize:]))
	}
	return Sample{values: values}, nil
}

// Encode returns the on-disk representation of s.
func Encode(s Sample) []byte {
	out := make([]byte, 0, s.Size())
	for _, v := range s.values {
		out = binary.NativeEndian.AppendUint32(out, uint32(v))
	}
	return out
}

// Write stores s at path, replacing any existing file.
func Write(fsys afero.Fs, path string, s Sample) error {
	if err := afero.WriteFile(fsys, path, Encode(s), 0644); err != nil {
		return fmt.Errorf("failed to write sample %s: %w", path, err)
	}
	return nil
}

// Generate builds a reproducible pseudo-random sample of n values.
func Generate(n int, seed uint64) Sample {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(r.Uint32())
	}
	return Sample{values: values}
}
