package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BertoldVdb/ms21xx-fwgen/msfw"
	"github.com/alecthomas/kong"
	"github.com/golang/glog"
)

type Context struct {
	config msfw.Config
}

var CLI struct {
	LogLevel int `optional:"" help:"Higher values give more output."`

	Generate GenerateCmd `cmd:"" help:"Generate a patched firmware image."`
	Check    CheckCmd    `cmd:"" help:"Verify the checksums of a firmware image."`
	Diff     DiffCmd     `cmd:"" help:"Show the bytes that differ between two images."`
	Profiles ProfilesCmd `cmd:"" help:"List supported chips and their field offsets."`
}

func main() {
	k, err := kong.New(&CLI,
		kong.Name("ms21xx-fwgen"),
		kong.Description("Patch USB IDs, descriptors, EDID and serial into MS2109/MS2130 firmware."),
		kong.NamedMapper("chip", chipMapper{}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(CLI.LogLevel))
	flag.CommandLine.Parse(nil)
	defer glog.Flush()

	c := &Context{
		config: msfw.Config{
			LogFunc: func(level int, format string, param ...interface{}) {
				glog.V(glog.Level(level)).Infof(format, param...)
			},
		},
	}

	err = ctx.Run(c)
	glog.Flush()
	ctx.FatalIfErrorf(err)
}
