//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the ruins viewer.
func (Run) Ruins() error {
	fmt.Println("Run ruins viewer...")
	if _, err := executeCmd("go", withArgs("run", "./main.go"), withDir("examples/ruins"), withStream()); err != nil {
		return err
	}
	return nil
}
