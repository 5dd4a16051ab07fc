package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mindscreen/internal/screening"
)

var version = "0.1.0"

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("screen [flags] <%s> <answer>...", strings.Join(screening.Names(), "|")),
		Short: "Score a PHQ-9 or GAD-7 questionnaire offline",
		Example: `  screen phq9 1 2 0 3 1 1 2 0 1
  screen --output json gad7 1 1 1 1 1 1 1
  screen gad7 -1 0 0 0 0 0 0`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(out, args[0], args[1:], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	// Flags go before the instrument so answers like -1 are not read as flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runScreen(out io.Writer, name string, raw []string, output string) error {
	if output != "text" && output != "json" {
		return exitError(1, "unknown output format %q", output)
	}

	in, ok := screening.Lookup(name)
	if !ok {
		return exitError(2, "unknown instrument %q (want one of %s)", name, strings.Join(screening.Names(), ", "))
	}

	answers := make([]int, 0, len(raw))
	for _, a := range raw {
		n, err := strconv.Atoi(a)
		if err != nil {
			return exitError(2, "%s", in.RequiredMessage())
		}
		answers = append(answers, n)
	}

	result, err := in.Score(answers)
	if err != nil {
		if errors.Is(err, screening.ErrInvalidInput) {
			return exitError(2, "%s", in.RequiredMessage())
		}
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(out)
		return enc.Encode(result)
	}
	_, err = fmt.Fprintf(out, "score=%d severity=%s\n", result.Score, result.Severity)
	return err
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
