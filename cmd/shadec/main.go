// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command shadec composes and compiles shade shaders.
//
// Usage:
//
//	shadec [options] <input.wgsl>
//
// Examples:
//
//	shadec post.wgsl                 # Print the composed source
//	shadec -D SHADOWS post.wgsl      # Compose with a define enabled
//	shadec -reflect post.wgsl        # Print bindings and entry points
//	shadec -o post.spv post.wgsl     # Compile to SPIR-V
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/naga/ir"
	"github.com/gogpu/shade"
)

// defineList collects repeatable -D flags.
type defineList []string

func (d *defineList) String() string { return strings.Join(*d, ",") }

func (d *defineList) Set(value string) error {
	*d = append(*d, value)
	return nil
}

var (
	output     = flag.String("o", "", "write SPIR-V to file")
	reflectOut = flag.Bool("reflect", false, "print reflected bindings and entry points")
	root       = flag.String("root", "", "resolve shader paths relative to this directory")
	version    = flag.Bool("version", false, "print version")
)

func main() {
	var defines defineList
	flag.Var(&defines, "D", "preprocessor define (repeatable)")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("shadec version %s\n", shade.Version)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input shader specified")
		usage()
		os.Exit(1)
	}

	processor := shade.NewProcessor(shade.WithLoader(shade.FileLoader{Root: *root}))
	ref := shade.PathRef(args[0])
	defineSet := shade.NewDefineSet(defines...)

	switch {
	case *output != "":
		shader, err := processor.Shader(ref, defineSet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
			os.Exit(1)
		}
		spirv, err := shader.SPIRV()
		if err != nil {
			fmt.Fprintf(os.Stderr, "SPIR-V error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*output, spirv, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Compiled %s to %s (%d bytes)\n", args[0], *output, len(spirv))

	case *reflectOut:
		shader, err := processor.Shader(ref, defineSet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
			os.Exit(1)
		}
		printReflection(shader)

	default:
		composed, err := processor.Compose(ref, defineSet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Composition error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(composed)
	}
}

func printReflection(shader *shade.Shader) {
	fmt.Println("bindings:")
	for _, b := range shader.Bindings() {
		fmt.Printf("  @group(%d) @binding(%d) %s (%s)\n", b.Group, b.Binding, b.Name, b.Kind)
	}
	fmt.Println("entry points:")
	for _, ep := range shader.EntryPoints() {
		fmt.Printf("  %-8s %s\n", stageName(ep.Stage), ep.Name)
	}
}

func stageName(stage ir.ShaderStage) string {
	switch stage {
	case ir.StageVertex:
		return "vertex"
	case ir.StageFragment:
		return "fragment"
	case ir.StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shadec [options] <input.wgsl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shadec post.wgsl                 Print the composed source\n")
	fmt.Fprintf(os.Stderr, "  shadec -D SHADOWS post.wgsl      Compose with a define enabled\n")
	fmt.Fprintf(os.Stderr, "  shadec -reflect post.wgsl        Print bindings and entry points\n")
	fmt.Fprintf(os.Stderr, "  shadec -o post.spv post.wgsl     Compile to SPIR-V\n")
}
