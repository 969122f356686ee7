// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/id.wgsl
var idShaderSource string

// ErrEmptyShader is returned when the embedded shader source is missing.
var ErrEmptyShader = errors.New("wgpu: id shader source is empty")

// IDShaderSource returns the WGSL source of the id pass shader.
func IDShaderSource() string {
	return idShaderSource
}

// CompileIDShader compiles the id shader to SPIR-V words.
func CompileIDShader() ([]uint32, error) {
	if idShaderSource == "" {
		return nil, ErrEmptyShader
	}
	spirvBytes, err := naga.Compile(idShaderSource)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile id shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// IDColor converts an id triple to the normalised RGBA the shader outputs.
// An 8-bit unorm target stores round(v*255), which recovers every byte.
func IDColor(c [3]byte) [4]float32 {
	return [4]float32{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
		1,
	}
}
