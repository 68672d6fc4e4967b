package platform

import (
	"errors"
	"testing"

	"envmon-go/errcode"
	"envmon-go/inference"
	"envmon-go/inference/model"
)

func TestLoadModelCodes(t *testing.T) {
	var arena inference.Arena
	var ok inference.Engine
	if err := LoadModel(&ok, model.Brightness, arena[:]); err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	var small inference.Engine
	err := LoadModel(&small, model.Brightness, make([]byte, 32))
	if errcode.Of(err) != errcode.TensorAlloc || !errors.Is(err, inference.ErrArenaExhausted) {
		t.Fatalf("small arena = %v", err)
	}

	bad := append([]byte(nil), model.Brightness...)
	bad[4]++
	var mismatch inference.Engine
	err = LoadModel(&mismatch, bad, arena[:])
	if errcode.Of(err) != errcode.ModelLoad || !errors.Is(err, inference.ErrVersionMismatch) {
		t.Fatalf("version mismatch = %v", err)
	}
	want := "model: model_load_failed: schema 4, want 3: inference: model schema version mismatch"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
