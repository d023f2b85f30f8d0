package main

import (
	"os"

	"quill/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
