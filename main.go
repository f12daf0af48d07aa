package main

import (
	"github.com/fredebaene/qpcr/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
