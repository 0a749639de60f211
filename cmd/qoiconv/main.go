// Command qoiconv converts raster images between QOI, PPM (P6), and PNG.
//
// Usage:
//
//	qoiconv [-from fmt] [-to fmt] [-o output] <input>
//
// Use "-" for the input path to read from stdin, and "-o -" to write to
// stdout. Formats are sniffed from magic bytes on input and guessed from
// the output path's extension when not given explicitly.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qoiraster/qoi"
	"github.com/qoiraster/qoi/png"
	"github.com/qoiraster/qoi/ppm"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func main() {
	from := flag.String("from", "", "input format: qoi, ppm, png (sniffed from magic bytes if omitted)")
	to := flag.String("to", "", "output format: qoi, ppm, png (guessed from output extension if omitted)")
	output := flag.String("o", "", `output path (default: <input>.<to>, "-" for stdout)`)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: qoiconv [-from fmt] [-to fmt] [-o output] <input>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *output, *from, *to); err != nil {
		fmt.Fprintf(os.Stderr, "qoiconv: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath, fromFlag, toFlag string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	from := fromFlag
	if from == "" {
		from = sniff(data)
	}
	raster, err := decodeAs(from, data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", orUnknown(from), err)
	}

	to := toFlag
	if to == "" {
		to = extFormat(outputPath)
	}
	if to == "" {
		to = extFormat(inputPath)
	}

	out, closeOut, err := openOutput(outputPath, inputPath, to)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer closeOut()

	if err := encodeAs(to, out, raster); err != nil {
		return fmt.Errorf("encoding %s: %w", orUnknown(to), err)
	}
	return nil
}

func orUnknown(format string) string {
	if format == "" {
		return "<unknown format>"
	}
	return format
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(outputPath, inputPath, to string) (io.Writer, func() error, error) {
	if outputPath == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		ext := to
		if ext == "" {
			ext = "out"
		}
		outputPath = base + "." + ext
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func sniff(data []byte) string {
	switch {
	case len(data) >= 4 && string(data[:4]) == "qoif":
		return "qoi"
	case len(data) >= 2 && string(data[:2]) == "P6":
		return "ppm"
	case len(data) >= len(pngSignature) && bytes.Equal(data[:len(pngSignature)], pngSignature):
		return "png"
	default:
		return ""
	}
}

func extFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".qoi":
		return "qoi"
	case ".ppm":
		return "ppm"
	case ".png":
		return "png"
	default:
		return ""
	}
}

func decodeAs(format string, data []byte) (qoi.Raster, error) {
	switch format {
	case "qoi":
		return qoi.DecodeRaster(data)
	case "ppm":
		return ppm.Decode(bytes.NewReader(data))
	case "png":
		return png.Decode(bytes.NewReader(data))
	default:
		return qoi.Raster{}, fmt.Errorf("unrecognized input format %q", format)
	}
}

func encodeAs(format string, w io.Writer, r qoi.Raster) error {
	switch format {
	case "qoi":
		_, err := w.Write(qoi.EncodeRaster(r))
		return err
	case "ppm":
		return ppm.Encode(w, r)
	case "png":
		return png.Encode(w, r)
	default:
		return fmt.Errorf("unrecognized output format %q", format)
	}
}
