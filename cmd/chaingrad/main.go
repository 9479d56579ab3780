// Package main provides the chaingrad CLI.
package main

import (
	"fmt"
	"log"
	"os"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("chaingrad: ")

	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "version":
		fmt.Printf("chaingrad %s\n", version)
	case "demo":
		err = runDemo(os.Stdout)
	case "grad":
		err = runGrad(args)
	case "check":
		err = runCheck(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println("chaingrad - reverse-mode differentiation of y = square(exp(square(x)))")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Run the reference scenarios")
	fmt.Println("  grad       Compute dy/dx for -x values")
	fmt.Println("  check      Compare dy/dx against central differences")
}
