// Package main provides the entry point for translate-ai.
//
// translate-ai is a terminal page reader with an inline translation
// overlay: select text and a trigger appears; activate it to translate the
// selection through a Gemini-backed relay. The relay can also be served to
// browser extensions, remote readers and MCP agents.
//
// Usage:
//
//	translate-ai [page]
//	translate-ai translate --lang Italian "text"
//	translate-ai relay serve
package main

import (
	"fmt"
	"os"

	"github.com/riordanpawley/translate-ai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
