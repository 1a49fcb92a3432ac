package main

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2"
	minifysvg "github.com/tdewolff/minify/v2/svg"

	"github.com/relineate/relineate/rmlines"
	"github.com/relineate/relineate/rmpdf"
	"github.com/relineate/relineate/rmraster"
	"github.com/relineate/relineate/rmsvg"
)

const version = "0.2.0"

type Convert struct {
	Input   string  `short:"i" desc:"Input .rm v5 file"`
	Output  string  `short:"o" desc:"Output file (.svg, .svgz, .png or .pdf); - writes SVG to stdout; defaults to the input name with .svg"`
	Width   float64 `default:"1404" desc:"Target canvas width"`
	Height  float64 `default:"1872" desc:"Target canvas height"`
	Smooth  bool    `short:"s" desc:"Smooth strokes with quadratic curves"`
	Minify  bool    `short:"m" desc:"Minify SVG output"`
	Verbose bool    `short:"v" desc:"Print diagnostics to stderr"`
	Version bool    `short:"V" desc:"Print version and exit"`
}

func main() {
	root := argp.NewCmd(&Convert{}, "Convert reMarkable .lines (v5) files to SVG, PNG or PDF")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Convert) Run() error {
	if cmd.Version {
		fmt.Println("relineate v" + version)
		return nil
	}
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	var diag rmlines.Diagnostics
	if cmd.Verbose {
		diag = log.New(os.Stderr, "relineate: ", 0)
	}

	buf, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	doc, err := rmlines.ReadDocument(buf, diag)
	if err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = strings.TrimSuffix(cmd.Input, filepath.Ext(cmd.Input)) + ".svg"
	}
	if output == "-" {
		return cmd.writeSVG(os.Stdout, doc, 0)
	}

	// resolve the format before touching the filesystem
	var render func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg":
		render = func(w io.Writer) error { return cmd.writeSVG(w, doc, 0) }
	case ".svgz":
		render = func(w io.Writer) error { return cmd.writeSVG(w, doc, gzip.BestCompression) }
	case ".png":
		render = func(w io.Writer) error {
			return png.Encode(w, rmraster.RasterDocument(doc, int(cmd.Width), int(cmd.Height)))
		}
	case ".pdf":
		render = func(w io.Writer) error { return rmpdf.RenderDocument(doc, cmd.Width, cmd.Height).Output(w) }
	default:
		return fmt.Errorf("output extension must be SVG, SVGZ, PNG or PDF, got %q", ext)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (cmd *Convert) writeSVG(w io.Writer, doc *rmlines.Document, compression int) error {
	opts := &rmsvg.Options{
		Width:  cmd.Width,
		Height: cmd.Height,
		Smooth: cmd.Smooth,
	}
	if !cmd.Minify {
		opts.Compression = compression
		return rmsvg.Render(w, doc, opts)
	}

	// minify the plain text first, then apply the requested compression
	var buf bytes.Buffer
	if err := rmsvg.Render(&buf, doc, opts); err != nil {
		return err
	}
	m := minify.New()
	m.AddFunc("image/svg+xml", minifysvg.Minify)
	if compression != 0 {
		zw, err := gzip.NewWriterLevel(w, compression)
		if err != nil {
			return err
		}
		if err := m.Minify("image/svg+xml", zw, &buf); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}
	return m.Minify("image/svg+xml", w, &buf)
}
