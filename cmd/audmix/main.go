// SPDX-License-Identifier: EPL-2.0

// Command audmix mixes synthesized speech with music beds and break
// effects into a WAV file.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
