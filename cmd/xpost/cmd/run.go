package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-xpost"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/xpostcfg"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	deviceSpec string
	outputPath string
	presetName string
	configPath string
	pageWidth  int
	pageHeight int
	trace      bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a PostScript program",
	Long: `Execute a PostScript Level 2 program from a file or inline expression.

Examples:
  # Run a PostScript file to a PNG file
  xpost run --device png --output out.png script.ps

  # Evaluate inline code with a BGR raster device
  xpost run -e "/x 42 def x 2 mul showpage" --device raster:bgr --output out.raw

  # Use a named device/page-size preset from a config file
  xpost run --config xpost.yaml --preset screen-bgr script.ps`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().StringVar(&deviceSpec, "device", "", `device spec ("raster", "raster:bgr", "png", ...)`)
	runCmd.Flags().StringVar(&outputPath, "output", "", "output file path for the rendered page")
	runCmd.Flags().StringVar(&presetName, "preset", "", "named device/page-size preset (requires --config, or uses built-in defaults)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML config file of page-size and device presets")
	runCmd.Flags().IntVar(&pageWidth, "width", 0, "page width in points (overrides preset)")
	runCmd.Flags().IntVar(&pageHeight, "height", 0, "page height in points (overrides preset)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print a diagnostics JSON snapshot after execution")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	var kind xpost.InputKind

	switch {
	case evalExpr != "":
		input = evalExpr
		kind = xpost.InputString
	case len(args) == 1:
		input = args[0]
		kind = xpost.InputFilename
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	spec := xpost.CreateSpec{
		DeviceSpec: deviceSpec,
		Width:      pageWidth,
		Height:     pageHeight,
		PresetName: presetName,
	}
	if verbose {
		spec.MsgLevel = pscontext.Verbose
	}
	if trace {
		spec.MsgLevel = pscontext.Tracing
	}

	if configPath != "" {
		cfg, err := xpostcfg.Load(configPath)
		if err != nil {
			return err
		}
		spec.Config = cfg
	} else if presetName != "" {
		spec.Config = xpostcfg.Default()
	}

	if outputPath != "" {
		spec.OutputType = xpost.OutputFilename
		spec.OutputPath = outputPath
	} else {
		var buf []byte
		spec.OutputType = xpost.OutputBuffer
		spec.OutputPtr = &buf
	}

	if err := xpost.Init(); err != nil {
		return err
	}
	defer xpost.Quit()

	ctx, err := xpost.Create(spec)
	if err != nil {
		return fmt.Errorf("xpost: create: %w", err)
	}
	defer ctx.Destroy()

	result, err := ctx.Run(kind, input)
	if err != nil {
		return fmt.Errorf("xpost: run: %w", err)
	}

	if result.Yielded {
		fmt.Fprintln(os.Stderr, "showpage: yielded (resume not supported from the CLI)")
	}

	if trace {
		snapshot, err := ctx.Diagnostics()
		if err != nil {
			return err
		}
		fmt.Println(snapshot)
	}

	if spec.OutputType == xpost.OutputBuffer && outputPath == "" && len(*spec.OutputPtr) > 0 {
		fmt.Fprintf(os.Stderr, "rendered %d byte(s) (no --output given, discarding)\n", len(*spec.OutputPtr))
	}

	return nil
}
