package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

type outputOptions struct {
	JSON    bool
	Verbose bool
	NoColor bool
}

// output renders command results either as colored text or as JSON
type output struct {
	json    bool
	verbose bool
	out     io.Writer
	errOut  io.Writer

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
	bold   *color.Color
}

func newOutput(stdout, stderr io.Writer, opts outputOptions) *output {
	if opts.NoColor || opts.JSON {
		color.NoColor = true
	}
	return &output{
		json:    opts.JSON,
		verbose: opts.Verbose,
		out:     stdout,
		errOut:  stderr,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		gray:    color.New(color.FgHiBlack),
		bold:    color.New(color.Bold),
	}
}

func (o *output) Green(s string) string  { return o.green.Sprint(s) }
func (o *output) Yellow(s string) string { return o.yellow.Sprint(s) }
func (o *output) Red(s string) string    { return o.red.Sprint(s) }
func (o *output) Gray(s string) string   { return o.gray.Sprint(s) }
func (o *output) Bold(s string) string   { return o.bold.Sprint(s) }

func (o *output) Print(msg string) {
	if o.json {
		return
	}
	fmt.Fprintln(o.out, msg)
}

func (o *output) Printf(format string, args ...any) {
	o.Print(fmt.Sprintf(format, args...))
}

func (o *output) Success(msg string) {
	o.Print(o.Green(msg))
}

func (o *output) Warn(msg string) {
	o.Print(o.Yellow(msg))
}

func (o *output) Debug(msg string) {
	if o.json || !o.verbose {
		return
	}
	fmt.Fprintln(o.errOut, o.Gray(msg))
}

func (o *output) Error(msg string) {
	fmt.Fprintln(o.errOut, o.Red(msg))
}

func (o *output) EmitJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
