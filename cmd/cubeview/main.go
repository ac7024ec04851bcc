// Command cubeview runs the InstancingViewer GL core in a desktop window.
//
//	cubeview [-options cubeview.toml] [-fps 0] texture.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"instancing-viewer/internal/core"
	"instancing-viewer/internal/frontend"
	"instancing-viewer/internal/graphics"
	"instancing-viewer/internal/graphics/gldevice"
	"instancing-viewer/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	optionsPath := flag.String("options", "cubeview.toml", "options file, watched for changes (empty disables)")
	fps := flag.Float64("fps", 0, "frame rate override, 0 uses the core's")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] texture.png\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *optionsPath, *fps); err != nil {
		log.Fatal(err)
	}
}

func run(texture, optionsPath string, fps float64) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := frontend.SetupWindow(640, 480, "cubeview")
	if err != nil {
		return err
	}
	defer window.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	options := frontend.NewOptions(optionsPath)
	if err := options.Watch(ctx); err != nil {
		log.Printf("not watching %s: %v", optionsPath, err)
	}

	c := core.New(gldevice.New(), graphics.PNGDecoder{})
	app := frontend.NewApp(window, input.NewInputManager(), options, c, fps)
	return app.Run(texture)
}
