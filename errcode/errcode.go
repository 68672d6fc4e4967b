package errcode

// Code is a stable, log-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK          Code = "ok"
	Busy        Code = "busy"
	Unsupported Code = "unsupported"

	// Startup faults. Any of these halts the device.
	DisplayInit    Code = "display_init_failed"
	SensorInit     Code = "sensor_init_failed"
	ModelLoad      Code = "model_load_failed"
	TensorAlloc    Code = "tensor_alloc_failed"
	EngineNotReady Code = "engine_not_ready"

	// Cycle-level faults. The current cycle is abandoned.
	InferenceFailed Code = "inference_failed"

	// Terminal power states.
	DeepSleep Code = "deep_sleep"
	Halted    Code = "halted"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// Wrap attaches a code and operation to a cause. A nil cause yields nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}
