// Command zkcheck is the test/ops driver over the zkVM core packages: it
// is not the RISC-V emulator's own CLI (out of scope per spec.md §1),
// just a thin runner for the mock-prover end-to-end scenarios (§8
// S1-S6) and the table-cache maintenance commands.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("zkcheck: command failed")
		os.Exit(1)
	}
}
