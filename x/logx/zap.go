//go:build !rp2040 && !rp2350

package logx

import (
	"fmt"

	"go.uber.org/zap"
)

// NewZap builds the host-side logger: development output when debug is set,
// JSON production output otherwise.
func NewZap(debug bool) (*zap.SugaredLogger, error) {
	var zl *zap.Logger
	var err error
	if debug {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %v", err)
	}
	return zl.Sugar(), nil
}

var _ Logger = (*zap.SugaredLogger)(nil)
