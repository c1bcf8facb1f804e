// Package asm implements an assembler which turns a CHIP-8 source file and its
// includes into a raw program image, ready to be loaded at 0x200.
package asm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/chip8/asm/parser"
)

// Assemble builds a program from a single source stream.
// Include statements are not supported here; use Build for that.
// The filename is only used for error context.
func Assemble(r io.Reader, filename string) ([]byte, error) {
	ast := parser.NewAST()
	if err := ast.Parse(r, filename); err != nil {
		return nil, err
	}

	return newAssembler().assemble(ast)
}

// Build builds a program from the given source file and its includes.
// Includes are looked up relative to the including file first, then in
// the given search paths.
func Build(file string, includeSearchPaths []string) ([]byte, error) {
	ast, err := BuildAST(file, includeSearchPaths)
	if err != nil {
		return nil, err
	}

	return newAssembler().assemble(ast)
}

// BuildAST builds the full AST for the given file and its dependencies.
// Include statements are replaced by the statements of the included file.
func BuildAST(file string, includeSearchPaths []string) (*parser.AST, error) {
	ast := parser.NewAST()
	return ast, buildAST(ast, file, includeSearchPaths, nil)
}

// buildAST reads the given source file and its dependencies into the specified AST.
// It ensures the file and its dependencies do not contain any circular include references.
func buildAST(ast *parser.AST, file string, includeSearchPaths, dependencyChain []string) error {
	file = findSourceFile(file, includeSearchPaths)
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}

	if containsString(dependencyChain, file) {
		return fmt.Errorf("circular reference to file %q detected", file)
	}

	dependencyChain = append(dependencyChain, file)

	src := parser.NewAST()
	if err := src.ParseFile(file); err != nil {
		return err
	}

	dir, _ := filepath.Split(file)
	searchPaths := append([]string{dir}, includeSearchPaths...)

	for _, st := range src.Statements() {
		if st.Kind != parser.Include {
			ast.Append(st)
			continue
		}

		if err := buildAST(ast, st.Name, searchPaths, dependencyChain); err != nil {
			if _, ok := err.(*parser.Error); ok {
				return err
			}
			return parser.NewError(st.Pos, "%v", err)
		}
	}

	return nil
}

// findSourceFile returns the fully qualified version of file.
// Returns file as-is if it exists on disk. If not, looks in directories
// specified by the given include search paths.
func findSourceFile(file string, includeSearchPaths []string) string {
	if stat, err := os.Stat(file); err == nil && !stat.IsDir() {
		return file
	}

	for _, inc := range includeSearchPaths {
		path := filepath.Join(inc, file)
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			return path
		}
	}

	return file
}

// containsString returns true if set contains v.
func containsString(set []string, v string) bool {
	for _, sv := range set {
		if sv == v {
			return true
		}
	}
	return false
}
