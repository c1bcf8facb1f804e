package main

import (
	"fmt"

	"github.com/retroenv/retrogolib/buildinfo"
)

// Set by the linker through -ldflags "-X main.version=...".
var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

// Version returns program version information.
func Version() string {
	return fmt.Sprintf("hexaflex chip8-sprite %s", buildinfo.Version(version, commit, date))
}
