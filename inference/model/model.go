// Package model embeds the pre-trained brightness model descriptor.
//
// brightness.json holds the dense-layer weights as exported from training
// (Keras kernel layout); brightness.bmod is the packed descriptor the engine
// loads.
package model

import _ "embed"

//go:generate go run ../../cmd/modelpack -in brightness.json -out brightness.bmod

// Brightness maps (norm_lux, norm_dist) to a brightness level.
//
//go:embed brightness.bmod
var Brightness []byte
