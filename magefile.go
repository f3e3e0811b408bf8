//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildObservables)
	mg.Deps(BuildRoundtrip)
	fmt.Println("Compilation finished")
	return nil
}

func BuildObservables() error {
	fmt.Println("Building observables executable...")
	return buildCommand("./bin/observables", "./observables")
}

func BuildRoundtrip() error {
	fmt.Println("Building roundtrip executable...")
	return buildCommand("./bin/roundtrip", "./roundtrip")
}

// The HDF5 binding is cgo, the flags have to reach the compiler.
func buildCommand(output string, path string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", "build", "-o", output, path)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
