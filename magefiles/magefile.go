//go:build mage

// Package main provides build targets for the as-client project using Mage.
//
// Usage:
//
//	mage build     Compile the as-client binary to bin/
//	mage test      Run all tests
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install as-client to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "as-client"
	binaryDir  = "bin"
	cmdDir     = "./cmd/as-client"
)

// Build compiles the as-client binary to bin/ with version metadata.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(),
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// ldflags injects version metadata into the binary. Outside a git checkout
// the version stays at its "dev" default.
func ldflags() string {
	flags := fmt.Sprintf("-X main.buildTime=%s", time.Now().UTC().Format(time.RFC3339))
	if commit, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil {
		flags += fmt.Sprintf(" -X main.gitCommit=%s", commit)
	}
	if version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil {
		flags += fmt.Sprintf(" -X main.version=%s", version)
	}
	return flags
}
