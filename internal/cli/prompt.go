package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// dimensionPrompter asks for a missing output size on an interactive terminal.
type dimensionPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newDimensionPrompter(cmd *cobra.Command) *dimensionPrompter {
	in := cmd.InOrStdin()
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
	}
	return &dimensionPrompter{
		in:          bufio.NewReader(in),
		out:         cmd.ErrOrStderr(),
		interactive: interactive,
	}
}

// resolve returns width and height, prompting for whichever is zero.
func (p *dimensionPrompter) resolve(width, height float64) (float64, float64, error) {
	if width != 0 && height != 0 {
		return width, height, nil
	}
	if !p.interactive {
		return 0, 0, fmt.Errorf("--width and --height are required when stdin is not a terminal")
	}

	var err error
	if width == 0 {
		if width, err = p.ask("Enter output width in centimetres: "); err != nil {
			return 0, 0, err
		}
	}
	if height == 0 {
		if height, err = p.ask("Enter output height in centimetres: "); err != nil {
			return 0, 0, err
		}
	}
	return width, height, nil
}

func (p *dimensionPrompter) ask(question string) (float64, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, fmt.Errorf("failed to read answer: %w", err)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("please enter a valid number: %w", err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("dimensions must be positive numbers, got %g", v)
	}
	return v, nil
}
