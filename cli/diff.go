package main

import (
	"fmt"
	"os"
)

type DiffCmd struct {
	Old string `arg:"" name:"old" help:"Original image."`
	New string `arg:"" name:"new" help:"Modified image."`
}

func (d *DiffCmd) Run(c *Context) error {
	a, err := os.ReadFile(d.Old)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(d.New)
	if err != nil {
		return err
	}

	if len(a) != len(b) {
		fmt.Printf("Length differs: %d != %d\n", len(a), len(b))
	}

	fmt.Print(hexdiff(a, b))
	return nil
}
