// vibrant - prominent colour extraction for images
//
// vibrant picks six role-labelled colours (Vibrant, Muted and their dark and
// light variants) from an image for use in automatic theming.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/vibrant/internal/cli"

func main() {
	cli.Execute()
}
