// Package inference runs the fixed-topology brightness model.
//
// The engine executes a small stack of dense layers described by a binary
// model descriptor (see codec.go). All tensors live in a caller-provided,
// fixed-size arena that is carved up once in Init; nothing is allocated on the
// heap afterwards and the arena never grows. Weights are read in place from
// the descriptor bytes, which on the device sit in flash.
//
//	var arena inference.Arena
//	var eng inference.Engine
//	if err := eng.Init(model.Brightness, arena[:]); err != nil {
//		// fatal: the device halts
//	}
//	eng.SetInputs(normLux, normDist)
//	if err := eng.Run(); err == nil {
//		brightness := eng.Output()
//	}
package inference

import (
	"encoding/binary"
	"errors"
	"math"

	"envmon-go/x/mathx"
)

// ArenaSize is the working-memory budget fixed at build time.
const ArenaSize = 2 * 1024

// Arena is a statically sized tensor arena.
type Arena [ArenaSize]byte

// Model interface, fixed by the trained artifact.
const (
	NumInputs  = 2
	NumOutputs = 1
	MaxLayers  = 8
)

// State is the engine lifecycle state.
type State uint8

const (
	Uninitialized State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Errors returned by the engine.
var (
	ErrBadMagic        = errors.New("inference: bad model magic")
	ErrVersionMismatch = errors.New("inference: model schema version mismatch")
	ErrMalformed       = errors.New("inference: malformed model")
	ErrShape           = errors.New("inference: unsupported model shape")
	ErrArenaExhausted  = errors.New("inference: tensor arena exhausted")
	ErrInitialized     = errors.New("inference: engine already initialised")
	ErrNotReady        = errors.New("inference: engine not ready")
	ErrInvoke          = errors.New("inference: invoke failed")
)

// Tensor is a float32 view over a slice of the arena.
type Tensor struct{ buf []byte }

func (t Tensor) Len() int { return len(t.buf) / 4 }

func (t Tensor) At(i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(t.buf[4*i:]))
}

func (t Tensor) Set(i int, v float32) {
	binary.LittleEndian.PutUint32(t.buf[4*i:], math.Float32bits(v))
}

type dense struct {
	in, out int
	act     Activation
	w, b    []byte // views into the model bytes
	dst     Tensor
}

// Engine is the inference engine. The zero value is Uninitialized.
type Engine struct {
	state State

	arena []byte
	used  int

	layers  [MaxLayers]dense
	nLayers int

	input  Tensor
	output Tensor
}

// State reports the lifecycle state.
func (e *Engine) State() State { return e.state }

// Ready reports whether Run may be called.
func (e *Engine) Ready() bool { return e.state == Ready }

// ArenaUsed returns the bytes of the arena taken by tensors.
func (e *Engine) ArenaUsed() int { return e.used }

// Init parses the model descriptor, checks its schema version and allocates
// every tensor inside arena. Init is one-shot; any failure leaves the engine
// Failed.
func (e *Engine) Init(model []byte, arena []byte) error {
	if e.state != Uninitialized {
		return ErrInitialized
	}
	if err := e.init(model, arena); err != nil {
		e.state = Failed
		e.input, e.output = Tensor{}, Tensor{}
		return err
	}
	e.state = Ready
	return nil
}

func (e *Engine) init(model []byte, arena []byte) error {
	h, err := parseHeader(model)
	if err != nil {
		return err
	}
	e.arena = arena
	e.used = 0

	if e.input, err = e.alloc(int(h.inputs)); err != nil {
		return err
	}
	off := headerSize + layerDescSize*int(h.layers)
	for i := 0; i < int(h.layers); i++ {
		ld := h.desc[i]
		nw := 4 * int(ld.in) * int(ld.out)
		nb := 4 * int(ld.out)
		l := &e.layers[i]
		l.in, l.out, l.act = int(ld.in), int(ld.out), ld.act
		l.w = model[off : off+nw]
		l.b = model[off+nw : off+nw+nb]
		off += nw + nb
		if l.dst, err = e.alloc(l.out); err != nil {
			return err
		}
	}
	e.nLayers = int(h.layers)
	e.output = e.layers[e.nLayers-1].dst
	return nil
}

// alloc carves n float32 values from the arena, 4-byte aligned.
func (e *Engine) alloc(n int) (Tensor, error) {
	start := (e.used + 3) &^ 3
	end := start + 4*n
	if end > len(e.arena) {
		return Tensor{}, ErrArenaExhausted
	}
	e.used = end
	return Tensor{buf: e.arena[start:end:end]}, nil
}

// SetInputs writes the two model inputs at indices 0 and 1.
func (e *Engine) SetInputs(normLux, normDist float32) {
	if e.state != Ready {
		return
	}
	e.input.Set(0, normLux)
	e.input.Set(1, normDist)
}

// Run executes one synchronous forward pass over the bound inputs.
// A failed run leaves the engine Ready.
func (e *Engine) Run() error {
	if e.state != Ready {
		return ErrNotReady
	}
	src := e.input
	for i := 0; i < e.nLayers; i++ {
		l := &e.layers[i]
		for o := 0; o < l.out; o++ {
			acc := f32(l.b, o)
			row := o * l.in
			for k := 0; k < l.in; k++ {
				acc += f32(l.w, row+k) * src.At(k)
			}
			if l.act == ReLU && acc < 0 {
				acc = 0
			}
			l.dst.Set(o, acc)
		}
		src = l.dst
	}
	for i := 0; i < e.output.Len(); i++ {
		if !mathx.IsFinite(e.output.At(i)) {
			return ErrInvoke
		}
	}
	return nil
}

// Output returns the model output at index 0.
func (e *Engine) Output() float32 {
	if e.state != Ready {
		return 0
	}
	return e.output.At(0)
}

func f32(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
}
