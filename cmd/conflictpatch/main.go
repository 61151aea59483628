// Command conflictpatch applies the enhancement patch sequence to a
// git-conflict-game checkout.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/conflictpatch/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
