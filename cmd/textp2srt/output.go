package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type tag string

const (
	tagOK    tag = "ok"
	tagWarn  tag = "warn"
	tagError tag = "error"
	tagInfo  tag = "info"
	tagHint  tag = "hint"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// printer writes command output to stdout. Tags are colored only on terminals.
type printer struct {
	out      io.Writer
	colorize bool
}

func newPrinter(cmd *cobra.Command) printer {
	out := cmd.OutOrStdout()
	return printer{out: out, colorize: shouldColorize(out)}
}

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p printer) tagged(t tag, format string, args ...any) {
	label := "[" + string(t) + "]"
	if p.colorize {
		if color := tagColor(t); color != "" {
			label = color + label + ansiReset
		}
	}
	fmt.Fprintf(p.out, label+" "+format+"\n", args...)
}

func tagColor(t tag) string {
	switch t {
	case tagOK:
		return ansiGreen
	case tagWarn:
		return ansiYellow
	case tagError:
		return ansiRed
	case tagInfo, tagHint:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
