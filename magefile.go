//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "svenska"

// Default target to run when none is specified
var Default = Build

// Build builds the svenska binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/svenska")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs all tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/svenska")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning")
	return os.RemoveAll(binary)
}
