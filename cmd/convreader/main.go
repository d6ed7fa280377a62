// Command convreader loads a convergence table and prints a short summary.
// Useful for checking a results file on machines with no display.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/piyushplcr7/2DParametricBEM/src/table"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "convergence.txt", "Path to convergence.txt")
	flag.Parse()
	tab, err := table.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d rows, %d columns\n", file, tab.Rows(), tab.Cols())
	for c := 0; c < tab.Cols(); c++ {
		lo := math.MaxFloat64
		hi := -math.MaxFloat64
		for r := 0; r < tab.Rows(); r++ {
			v := tab.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if lo > hi {
			fmt.Printf("col %d: no finite values\n", c)
			continue
		}
		fmt.Printf("col %d: min=%g max=%g\n", c, lo, hi)
	}
}
