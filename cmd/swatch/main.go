// Swatch - An accessible colour palette generator
//
// Swatch generates website colour palettes from colour theory, keeps every
// text colour readable on its background, and writes CSS, Tailwind, JSON and
// YAML themes.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/swatch/internal/cli"

func main() {
	cli.Execute()
}
