// Package shaders embeds the WGSL sources for the four quad render programs.
package shaders

import (
	_ "embed"
)

//go:embed panel.wgsl
var PanelWGSL string

//go:embed text.wgsl
var TextWGSL string

//go:embed texture.wgsl
var TextureWGSL string

//go:embed quad.wgsl
var QuadWGSL string
