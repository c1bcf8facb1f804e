package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/asm"
)

func main() {
	config := parseArgs()

	var err error
	if config.DumpAST {
		err = dumpAST(config)
	} else {
		err = buildBinary(config)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dumpAST loads the source AST and writes a human readable version of it to stdout.
func dumpAST(c *Config) error {
	ast, err := asm.BuildAST(c.Input, c.Includes)
	if err != nil {
		return err
	}

	fmt.Println(ast)
	return nil
}

// buildBinary builds a program and writes it to the requested output location.
func buildBinary(c *Config) error {
	program, err := asm.Build(c.Input, c.Includes)
	if err != nil {
		return err
	}

	w, close, err := makeWriter(c)
	if err != nil {
		return err
	}
	defer close()

	if _, err := w.Write(program); err != nil {
		return errors.Wrapf(err, "failed to write %q", c.Output)
	}

	if c.Output != "" {
		log.Printf("wrote %d bytes to %s", len(program), c.Output)
	}

	return nil
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func(), error) {
	if c.Output == "" {
		return os.Stdout, func() {}, nil
	}

	if dir, _ := filepath.Split(c.Output); dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to create output directory")
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create %q", c.Output)
	}

	return fd, func() { fd.Close() }, nil
}
