package main

import (
	"os"

	"github.com/jbqwizera/pipesh/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
