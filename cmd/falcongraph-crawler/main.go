package main

import (
	"os"

	"github.com/falcongraph/crawler/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
