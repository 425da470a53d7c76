// Command qoi encodes and decodes images in the QOI format from the
// command line.
//
// Usage:
//
//	qoi enc [options] <input>        PNG/JPEG/GIF -> QOI (use "-" for stdin)
//	qoi dec [options] <input.qoi>     QOI -> PNG (use "-" for stdin, -o - for stdout)
//	qoi info <input.qoi>              Display QOI metadata
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/kriticalflare/qoi"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "enc":
		err = runEnc(os.Args[2:])
	case "dec":
		err = runDec(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "qoi: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "qoi: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  qoi enc [options] <input>        Encode PNG/JPEG/GIF to QOI
  qoi dec [options] <input.qoi>    Decode QOI to PNG
  qoi info <input.qoi>             Print width/height/channels

Use "-" as input to read from stdin, "-o -" to write to stdout.

Run "qoi <command> -h" for command-specific options.
`)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func createOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// --- enc ---

func runEnc(args []string) error {
	fs := flag.NewFlagSet("enc", flag.ExitOnError)
	out := fs.String("o", "", "output path (default: input path with .qoi extension)")
	channels := fs.Int("channels", 4, "output channel count: 3 (RGB) or 4 (RGBA)")
	flipOnWrite := fs.Bool("flip", false, "flip vertically while writing")
	colorspace := fs.Int("colorspace", 0, "colorspace tag: 0 (sRGB) or 1 (linear)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("enc: expected exactly one input path")
	}
	input := fs.Arg(0)

	in, err := openInput(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	src, _, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding source image: %w", err)
	}

	outPath := *out
	if outPath == "" {
		outPath = input + ".qoi"
	}
	w, err := createOutput(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer w.Close()

	opts := qoi.DefaultOptions()
	opts.FlipOnWrite = *flipOnWrite
	opts.Colorspace = qoi.Colorspace(*colorspace)
	return qoi.ImageEncode(w, src, *channels, opts)
}

// --- dec ---

func runDec(args []string) error {
	fs := flag.NewFlagSet("dec", flag.ExitOnError)
	out := fs.String("o", "", "output path (default: input path with .png extension)")
	desired := fs.Int("channels", 0, "desired channel count (0 = native)")
	flipOnLoad := fs.Bool("flip", false, "flip vertically after decode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("dec: expected exactly one input path")
	}
	input := fs.Arg(0)

	in, err := openInput(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	opts := qoi.DefaultOptions()
	opts.FlipOnLoad = *flipOnLoad
	img, err := qoi.Decode(in, *desired, opts)
	if err != nil {
		return fmt.Errorf("decoding qoi: %w", err)
	}

	outPath := *out
	if outPath == "" {
		outPath = input + ".png"
	}
	w, err := createOutput(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer w.Close()

	return png.Encode(w, img.AsImage())
}

// --- info ---

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("info: expected exactly one input path")
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	w, h, channels, err := qoi.Info(in)
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	fmt.Printf("width=%d height=%d channels=%d\n", w, h, channels)
	return nil
}
