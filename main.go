// Entrypoint for the Cobra CLI; all command wiring lives in cmd/.

package main

import (
	"github.com/trumanellis/indras-sim/cmd"
)

func main() {
	cmd.Execute()
}
