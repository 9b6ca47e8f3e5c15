// Command scoredemo is a scoring fixture for sweeprun example configs: given
// a shared scale factor, a method name, and three tunable parameters, it
// prints a single score on its last line of output (spec §4.1's subprocess
// contract), mirroring the three scoring functions a distilled reference
// fixture used to exercise comparison and optimisation runs.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
)

func main() {
	if len(os.Args) != 6 {
		fmt.Fprintln(os.Stderr, "usage: scoredemo <a> <method> <u> <y> <z>")
		os.Exit(2)
	}

	method := os.Args[2]
	u, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil {
		fail(err)
	}
	y, err := strconv.ParseFloat(os.Args[4], 64)
	if err != nil {
		fail(err)
	}
	z, err := strconv.ParseFloat(os.Args[5], 64)
	if err != nil {
		fail(err)
	}

	var score float64
	switch method {
	case "methodA":
		score = math.Pow(y, u)/z + rand.Float64()
	case "methodB":
		score = y*u + z + 0.3*rand.Float64()
	case "methodC":
		score = math.Pow(math.Abs(y-u), 1/z) + 10.0*rand.Float64()
	default:
		fmt.Fprintf(os.Stderr, "unknown method %q\n", method)
		os.Exit(2)
	}

	fmt.Println(score)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}
