package nowplaying

import (
	"fmt"
	"io"
	"os"
)

// TerminalTitle sets the terminal window title via the OSC 2 escape.
type TerminalTitle struct {
	w io.Writer
}

// NewTerminalTitle writes titles to stdout.
func NewTerminalTitle() *TerminalTitle {
	return &TerminalTitle{w: os.Stdout}
}

func (t *TerminalTitle) SetTitle(title string) {
	fmt.Fprintf(t.w, "\x1b]2;%s\x07", title)
}
