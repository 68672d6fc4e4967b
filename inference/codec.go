package inference

import (
	"encoding/binary"
	"math"
)

// Model descriptor layout, little endian:
//
//	0   magic    "BRTM"
//	4   schema   u32
//	8   inputs   u16
//	10  outputs  u16
//	12  layers   u16
//	14  reserved u16
//	16  layers x { in u16, out u16, act u8, pad [3]u8 }
//	    per layer: weights out*in f32 (row-major, one row per output), bias out f32
const (
	// SchemaVersion is the descriptor schema this engine understands.
	SchemaVersion = 3

	magic         = "BRTM"
	headerSize    = 16
	layerDescSize = 8
)

// Activation applied after a dense layer.
type Activation uint8

const (
	Linear Activation = iota
	ReLU
)

func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	default:
		return "unknown"
	}
}

// Layer is one dense layer. Weights are row-major: Weights[o*In+i].
type Layer struct {
	In, Out int
	Act     Activation
	Weights []float32
	Bias    []float32
}

type layerDesc struct {
	in, out uint16
	act     Activation
}

type header struct {
	version uint32
	inputs  uint16
	outputs uint16
	layers  uint16
	desc    [MaxLayers]layerDesc
}

// Version reads the schema version field of a descriptor without validating
// the rest of it.
func Version(model []byte) (uint32, bool) {
	if len(model) < 8 || string(model[:4]) != magic {
		return 0, false
	}
	return binary.LittleEndian.Uint32(model[4:8]), true
}

func parseHeader(b []byte) (header, error) {
	var h header
	if len(b) < headerSize {
		return h, ErrMalformed
	}
	if string(b[:4]) != magic {
		return h, ErrBadMagic
	}
	h.version = binary.LittleEndian.Uint32(b[4:8])
	if h.version != SchemaVersion {
		return h, ErrVersionMismatch
	}
	h.inputs = binary.LittleEndian.Uint16(b[8:10])
	h.outputs = binary.LittleEndian.Uint16(b[10:12])
	h.layers = binary.LittleEndian.Uint16(b[12:14])
	if h.inputs != NumInputs || h.outputs != NumOutputs {
		return h, ErrShape
	}
	if h.layers == 0 || h.layers > MaxLayers {
		return h, ErrShape
	}
	if len(b) < headerSize+layerDescSize*int(h.layers) {
		return h, ErrMalformed
	}

	want := headerSize + layerDescSize*int(h.layers)
	prev := h.inputs
	for i := 0; i < int(h.layers); i++ {
		p := b[headerSize+layerDescSize*i:]
		d := layerDesc{
			in:  binary.LittleEndian.Uint16(p[0:2]),
			out: binary.LittleEndian.Uint16(p[2:4]),
			act: Activation(p[4]),
		}
		if d.in == 0 || d.out == 0 || d.in != prev || d.act > ReLU {
			return h, ErrShape
		}
		prev = d.out
		h.desc[i] = d
		want += 4 * (int(d.in)*int(d.out) + int(d.out))
	}
	if prev != h.outputs {
		return h, ErrShape
	}
	if len(b) != want {
		return h, ErrMalformed
	}
	return h, nil
}

// Encode builds a descriptor for layers at the current SchemaVersion.
func Encode(layers []Layer) ([]byte, error) {
	if len(layers) == 0 || len(layers) > MaxLayers {
		return nil, ErrShape
	}
	size := headerSize + layerDescSize*len(layers)
	prev := NumInputs
	for _, l := range layers {
		if l.In != prev || l.Out <= 0 || l.Out > math.MaxUint16 || l.Act > ReLU {
			return nil, ErrShape
		}
		if len(l.Weights) != l.In*l.Out || len(l.Bias) != l.Out {
			return nil, ErrMalformed
		}
		prev = l.Out
		size += 4 * (len(l.Weights) + len(l.Bias))
	}
	if prev != NumOutputs {
		return nil, ErrShape
	}

	b := make([]byte, 0, size)
	b = append(b, magic...)
	b = binary.LittleEndian.AppendUint32(b, SchemaVersion)
	b = binary.LittleEndian.AppendUint16(b, NumInputs)
	b = binary.LittleEndian.AppendUint16(b, NumOutputs)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(layers)))
	b = binary.LittleEndian.AppendUint16(b, 0)
	for _, l := range layers {
		b = binary.LittleEndian.AppendUint16(b, uint16(l.In))
		b = binary.LittleEndian.AppendUint16(b, uint16(l.Out))
		b = append(b, byte(l.Act), 0, 0, 0)
	}
	for _, l := range layers {
		for _, w := range l.Weights {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(w))
		}
		for _, v := range l.Bias {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
		}
	}
	return b, nil
}
