// ./main.go
package main

import (
	"github.com/xkilldash9x/fresco/cmd"
)

// main is the entry point for the fresco CLI.
func main() {
	cmd.Execute()
}
