package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/zoimods/cmd/zoimods"
	"github.com/arthur-debert/zoimods/pkg/output"
)

func main() {
	rootCmd := zoimods.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, output.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
