package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger separates what the user asked for from diagnostics.
// Info, Success and Failure go to out; Debug and Error are zerolog records on errOut.
type Logger struct {
	out     io.Writer
	log     zerolog.Logger
	success *color.Color
	failure *color.Color
}

// New returns a Logger writing user output to out and diagnostics to errOut.
// Debug records are only written when verbose is set.
func New(out, errOut io.Writer, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	cw := zerolog.ConsoleWriter{
		Out:        errOut,
		NoColor:    !isTerminal(errOut),
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}

	l := &Logger{
		out:     out,
		log:     zerolog.New(cw).Level(level),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	if !isTerminal(out) {
		l.success.DisableColor()
		l.failure.DisableColor()
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Debug writes a formatted debug record only if verbose is set.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

// Info prints all args to out
func (l *Logger) Info(args ...interface{}) {
	fmt.Fprint(l.out, args...)
}

// Infoln prints all args to out followed by a newline.
func (l *Logger) Infoln(args ...interface{}) {
	fmt.Fprintln(l.out, args...)
}

// Infof prints a formatted message to out
func (l *Logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
}

// Success prints a formatted line to out, green on a terminal.
func (l *Logger) Success(format string, args ...interface{}) {
	l.success.Fprintf(l.out, format+"\n", args...)
}

// Failure prints a formatted line to out, red on a terminal.
func (l *Logger) Failure(format string, args ...interface{}) {
	l.failure.Fprintf(l.out, format+"\n", args...)
}

// Error writes an error record with msg to errOut
func (l *Logger) Error(msg string, err error) {
	if err != nil {
		l.log.Error().Err(err).Msg(msg)
	}
}
