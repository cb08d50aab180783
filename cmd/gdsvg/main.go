// gdsvg converts SVG drawings into GDSII stream files. Curve geometry
// is flattened into polygons, scaled and centered from its bounding
// box, and written as boundary elements of a single GDS cell.
//
// Transforms on nested groups are not interpreted; run documents with
// transform nesting through a flattening preprocessor first.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/npillmayer/gdsvg/backend/gds"
	"github.com/npillmayer/gdsvg/core"
	"github.com/npillmayer/gdsvg/engine/convert"
	"github.com/npillmayer/gdsvg/input/svg"
)

// tracer traces with key 'gdsvg.cli'
func tracer() tracing.Trace {
	return tracing.Select("gdsvg.cli")
}

func main() {
	initDisplay()

	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	method := flag.String("method", "fixed", "Flattening method: fixed (uses -steps) or adaptive (uses -max-error)")
	steps := flag.Int("steps", 1000, "Sample steps per segment for -method=fixed")
	maxError := flag.Float64("max-error", 0.01, "Chord-error tolerance for -method=adaptive")
	width := flag.Float64("width", 0, "Scale geometry so the bounding box gets this wide (µm); 0 = no scaling")
	noFlipY := flag.Bool("no-flip-y", false, "Disable the y-flip to the GDS y-up convention")
	layer := flag.Int("layer", 0, "GDS layer for polygons without a gds-layer override")
	library := flag.String("library", gds.DefaultLibrary, "GDS library name")
	cell := flag.String("cell", gds.DefaultCell, "GDS cell name")
	flag.Parse()

	if flag.NArg() != 2 {
		pterm.Error.Println("usage: gdsvg [options] input.svg output.gds")
		os.Exit(1)
	}

	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.gdsvg.cli":     *tlevel,
		"trace.gdsvg.input":   *tlevel,
		"trace.gdsvg.path":    *tlevel,
		"trace.gdsvg.flatten": *tlevel,
		"trace.gdsvg.polygon": *tlevel,
		"trace.gdsvg.convert": *tlevel,
		"trace.gdsvg.backend": *tlevel,
		convert.ConfMethod:    *method,
		convert.ConfSteps:     strconv.Itoa(*steps),
		convert.ConfMaxError:  strconv.FormatFloat(*maxError, 'g', -1, 64),
		convert.ConfFlipY:     strconv.FormatBool(!*noFlipY),
		convert.ConfLayer:     strconv.Itoa(*layer),
	}
	if *width > 0 {
		conf[convert.ConfTargetWidth] = strconv.FormatFloat(*width, 'g', -1, 64)
	}
	setupTracing(conf)

	opts, err := convert.OptionsFromConfiguration(conf)
	if err != nil {
		fail(err)
	}
	n, err := run(flag.Arg(0), flag.Arg(1), opts, *library, *cell)
	if err != nil {
		fail(err)
	}
	if n == 0 {
		pterm.Info.Println("No geometry found in SVG, no output written")
		return
	}
	pterm.Info.Printfln("Conversion complete: wrote %d polygons to %s", n, flag.Arg(1))
}

func run(infile, outfile string, opts convert.Options, library, cell string) (int, error) {
	in, err := os.Open(infile)
	if err != nil {
		return 0, core.WrapError(err, core.EMISSING, "cannot open SVG input '%s'", infile)
	}
	defer in.Close()

	drawables, err := svg.ReadDocument(in)
	if err != nil {
		return 0, err
	}
	items := make([]convert.Item, len(drawables))
	for i, d := range drawables {
		items[i] = convert.Item{Path: d.Path, Layer: opts.Layer}
		if d.Style.HasLayer {
			items[i].Layer = d.Style.Layer
		}
	}
	tracer().Infof("converting %d drawable elements", len(items))

	n, err := emit(items, opts, outfile, library, cell)
	if err != nil || n == 0 {
		os.Remove(outfile) // never leave a partial or empty output file behind
	}
	return n, err
}

func emit(items []convert.Item, opts convert.Options, outfile, library, cell string) (int, error) {
	out, err := os.Create(outfile)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "cannot create GDS output '%s'", outfile)
	}
	sink := gds.NewWriter(out, library, cell)
	n, err := convert.ConvertItems(items, opts, sink)
	if err == nil && n > 0 {
		err = sink.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func setupTracing(conf testconfig.Conf) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " gdsvg ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func fail(err error) {
	pterm.Error.Println(core.UserMessage(err))
	tracer().Errorf(err.Error())
	code := core.Code(err)
	if code == core.NOERROR {
		code = core.EINTERNAL
	}
	os.Exit(code)
}
