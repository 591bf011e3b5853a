package model

import (
	"bufio"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd = "clear"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct{}

// Display renders the grid to w, one board row per line
func (r *TerminalRenderer) Display(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	err := g.ForEachCell(func(c *Cell, x, _ int) {
		if c.alive {
			bw.WriteString(gridPosBlock)
		} else {
			bw.WriteString(gridPosEmpty)
		}
		if x == g.width-1 {
			bw.WriteByte('\n')
		}
	})
	if err != nil {
		return errors.Wrap(err, "[Display]")
	}
	return errors.Wrap(bw.Flush(), "[Display] failed to flush output")
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
