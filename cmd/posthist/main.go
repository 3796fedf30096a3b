// Command posthist draws histograms of posterior samples and summarizes
// them.
//
// Usage:
//
//	posthist [render] [--config posthist.yaml] [--input file.csv] [--output out.png]
//	posthist summary  [--config posthist.yaml] [--input file.csv] [--output summary.csv] [--detailed hyper.csv]
//	posthist show     [--config posthist.yaml] [--input file.csv]
package main

import (
	"fmt"
	"os"

	"github.com/vdobler/posthist"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "posthist: %s: %v\n", posthist.ErrorKind(err), err)
		os.Exit(1)
	}
}
