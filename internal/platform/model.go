package platform

import (
	"errors"

	"envmon-go/errcode"
	"envmon-go/inference"
	"envmon-go/x/strconvx"
)

// LoadModel initialises e with model inside arena and maps engine failures
// onto startup fault codes.
func LoadModel(e *inference.Engine, model, arena []byte) error {
	err := e.Init(model, arena)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, inference.ErrArenaExhausted):
		return errcode.Wrap(errcode.TensorAlloc, "model", err)
	case errors.Is(err, inference.ErrVersionMismatch):
		v, _ := inference.Version(model)
		msg := "schema " + strconvx.FormatUint(uint64(v), 10) +
			", want " + strconvx.FormatUint(inference.SchemaVersion, 10)
		return &errcode.E{C: errcode.ModelLoad, Op: "model", Msg: msg, Err: err}
	default:
		return errcode.Wrap(errcode.ModelLoad, "model", err)
	}
}
