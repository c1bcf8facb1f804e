package main

import (
	"fmt"

	"github.com/retroenv/retrogolib/buildinfo"
)

const (
	AppVendor = "hexaflex"
	AppName   = "chip8-asm"
)

// Set by the linker through -ldflags "-X main.version=...".
var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

// Version returns program version information.
func Version() string {
	return fmt.Sprintf("%s %s %s", AppVendor, AppName, buildinfo.Version(version, commit, date))
}
