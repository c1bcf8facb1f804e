package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Program       string // Path to the ROM to load.
	ScaleFactor   int    // Amount by which each pixel is scaled (virtual resolution)
	TicksPerFrame int    // Instructions executed per 60Hz frame.
	Seed          int64  // Seed for the random number generator. 0 uses the current time.
	Fullscreen    bool   // Run in fullscreen?
	Terminal      bool   // Run in the terminal instead of a window?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.TicksPerFrame = 10

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.IntVar(&c.TicksPerFrame, "ticks-per-frame", c.TicksPerFrame, "Number of instructions executed per 60Hz frame.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. 0 seeds from the current time.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.Terminal, "terminal", c.Terminal, "Render to the terminal instead of opening a window.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.ScaleFactor < 1 || c.TicksPerFrame < 1 {
		fmt.Fprintln(os.Stderr, "scale-factor and ticks-per-frame must be positive")
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}
