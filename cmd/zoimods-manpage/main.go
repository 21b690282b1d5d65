package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/zoimods/cmd/zoimods"
	"github.com/arthur-debert/zoimods/internal/version"
)

func main() {
	rootCmd := zoimods.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ZOIMODS",
		Section: "1",
		Source:  "zoimods " + version.Version,
		Manual:  "zoimods manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
