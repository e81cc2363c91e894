// Package main is the entry point for the cq CLI tool.
package main

import (
	"github.com/covtools/cq/internal/cmd"
)

func main() {
	cmd.Execute()
}
