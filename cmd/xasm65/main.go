// Command xasm65 is the two-pass 6502/6510/65C02 cross-assembler's command
// line front end (spec.md section 6's EXTERNAL INTERFACES).
//
// Grounded on the teacher's own main.go for the build-time Version variable
// and the "accumulate diagnostics, print a final error/warning count, exit
// non-zero on any error" shape, re-cast onto
// github.com/urfave/cli/v2 in the style of
// _examples/chriskillpack-bbcdisasm/cmd/bbc-disasm/main.go (a flag- and
// Action-driven app with typed flags and cli.Exit for error-carrying exit
// codes) — that example is written against urfave/cli v1, whose Command/Flag
// types are not source-compatible with the v2 API this module's go.mod
// pins, so only its shape survives here, not its literal syntax.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/xasm65/xasm65/config"
	"github.com/xasm65/xasm65/internal/engine"
	"github.com/xasm65/xasm65/internal/opcode"
	"github.com/xasm65/xasm65/internal/output"
)

// Version is set at build time via -ldflags, matching the teacher's own
// version-stamping convention.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:      "xasm65",
		Usage:     "two-pass 6502/6510/65C02 cross-assembler",
		Version:   Version,
		ArgsUsage: "<source.asm>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file path"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format: prg or raw"},
			&cli.StringFlag{Name: "listing", Aliases: []string{"l"}, Usage: "write a source listing to `FILE`"},
			&cli.StringFlag{Name: "symbols", Aliases: []string{"s"}, Usage: "write a VICE label file to `FILE`"},
			&cli.StringSliceFlag{Name: "define", Aliases: []string{"D"}, Usage: "define NAME[=value] before assembling"},
			&cli.StringSliceFlag{Name: "include", Aliases: []string{"I"}, Usage: "add `DIR` to the include search path"},
			&cli.StringFlag{Name: "cpu", Usage: "CPU variant: 6502, 6510, or 65c02"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log build progress"},
			&cli.BoolFlag{Name: "cycles", Usage: "add a cycle-count column to the listing"},
		},
		Action: run,
	}

	cli.HandleExitCoder(app.Run(os.Args))
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("xasm65: missing source file", 1)
	}
	src := c.Args().First()

	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
	}

	cpuName := cfg.Build.DefaultCPU
	if v := c.String("cpu"); v != "" {
		cpuName = v
	}
	cpu, err := parseCPU(cpuName)
	if err != nil {
		return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
	}

	var includePaths []string
	includePaths = append(includePaths, c.StringSlice("include")...)
	includePaths = append(includePaths, envIncludePaths()...)
	includePaths = append(includePaths, cfg.Include.Paths...)

	verbose := c.Bool("verbose")
	logf := func(format string, args ...any) {
		if verbose {
			log.Printf(format, args...)
		}
	}

	e := engine.New(cpu, includePaths)
	for _, d := range c.StringSlice("define") {
		name, value, err := parseDefine(d)
		if err != nil {
			return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
		}
		if err := e.Symbols.Define(name, value, isZeroPage(value), true); err != nil {
			return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
		}
	}

	logf("assembling %s (cpu=%s)", src, cpuName)
	if err := e.AssembleFile(src); err != nil {
		return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
	}

	for _, w := range e.Diags().Warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}

	if e.Diags().HasErrors() {
		fmt.Fprintln(os.Stderr, e.Diags().Error())
		fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n", len(e.Diags().Errors), len(e.Diags().Warnings))
		return cli.Exit("", 1)
	}

	format, err := parseFormat(firstNonEmpty(c.String("format"), cfg.Build.OutputFormat))
	if err != nil {
		return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
	}

	outPath := c.String("output")
	if outPath == "" {
		outPath = defaultOutputPath(src, format)
	}
	img := output.Image(&e.Image, format)
	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
	}
	logf("wrote %d byte(s) to %s", len(img), outPath)

	if listPath := c.String("listing"); listPath != "" {
		if err := writeListingFile(e, listPath, c.Bool("cycles") || cfg.Listing.ShowCycles); err != nil {
			return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
		}
		logf("wrote listing to %s", listPath)
	}

	if symPath := c.String("symbols"); symPath != "" {
		if err := writeLabelsFile(e, symPath); err != nil {
			return cli.Exit(fmt.Sprintf("xasm65: %v", err), 1)
		}
		logf("wrote labels to %s", symPath)
	}

	fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n", len(e.Diags().Errors), len(e.Diags().Warnings))
	return nil
}

func writeListingFile(e *engine.Engine, path string, showCycles bool) error {
	f, err := os.Create(path) // #nosec G304 -- user-supplied output path
	if err != nil {
		return err
	}
	defer f.Close()
	opts := output.ListingOptions{ShowCycles: showCycles}
	return output.WriteListing(f, e.Lines, e.Symbols.All(), opts)
}

func writeLabelsFile(e *engine.Engine, path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-supplied output path
	if err != nil {
		return err
	}
	defer f.Close()
	return output.WriteLabels(f, e.Symbols.All())
}

func parseCPU(name string) (opcode.CPU, error) {
	switch strings.ToLower(name) {
	case "6502", "":
		return opcode.MOS6502, nil
	case "6510":
		return opcode.MOS6510, nil
	case "65c02":
		return opcode.WDC65C02, nil
	default:
		return 0, fmt.Errorf("unknown CPU %q (want 6502, 6510, or 65c02)", name)
	}
}

func parseFormat(name string) (output.Format, error) {
	switch strings.ToLower(name) {
	case "prg", "":
		return output.FormatPRG, nil
	case "raw":
		return output.FormatRaw, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want prg or raw)", name)
	}
}

// parseDefine splits a -D NAME[=value] flag argument, defaulting a
// value-less define to 1 the way the C preprocessor's -D does.
func parseDefine(s string) (name string, value int32, err error) {
	name, valueStr, hasValue := s, "1", false
	if i := strings.IndexByte(s, '='); i >= 0 {
		name, valueStr, hasValue = s[:i], s[i+1:], true
	}
	if name == "" {
		return "", 0, fmt.Errorf("-D %q: missing symbol name", s)
	}
	v, err := parseNumber(valueStr)
	if err != nil {
		if hasValue {
			return "", 0, fmt.Errorf("-D %s: %w", s, err)
		}
		return "", 0, fmt.Errorf("-D %s: %w", name, err)
	}
	return name, v, nil
}

// parseNumber accepts the same literal prefixes as the assembler's own
// expression grammar: $hex, 0x/0Xhex, %binary, and plain decimal.
func parseNumber(s string) (int32, error) {
	switch {
	case strings.HasPrefix(s, "$"):
		v, err := strconv.ParseInt(s[1:], 16, 32)
		return int32(v), err
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseInt(s[2:], 16, 32)
		return int32(v), err
	case strings.HasPrefix(s, "%"):
		v, err := strconv.ParseInt(s[1:], 2, 32)
		return int32(v), err
	default:
		v, err := strconv.ParseInt(s, 10, 32)
		return int32(v), err
	}
}

func isZeroPage(v int32) bool { return v >= 0 && v <= 0xFF }

// envIncludePaths reads ASM64_INCLUDE, split the way PATH is split on the
// host platform (spec.md section 6).
func envIncludePaths() []string {
	v := os.Getenv("ASM64_INCLUDE")
	if v == "" {
		return nil
	}
	return strings.Split(v, string(os.PathListSeparator))
}

func defaultOutputPath(src string, format output.Format) string {
	ext := ".prg"
	if format == output.FormatRaw {
		ext = ".bin"
	}
	base := strings.TrimSuffix(src, filepath.Ext(src))
	return base + ext
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
