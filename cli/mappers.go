package main

import (
	"reflect"

	"github.com/BertoldVdb/ms21xx-fwgen/msfw"
	"github.com/alecthomas/kong"
)

// chipMapper resolves a chip name into its profile.
type chipMapper struct{}

func (chipMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("chip", &value)
	if err != nil {
		return err
	}
	p, err := msfw.ProfileByName(value)
	if err != nil {
		return err
	}
	target.Set(reflect.ValueOf(p))
	return nil
}
