// ABOUTME: Write-only clipboard that emits OSC 52 escape sequences to the terminal
// ABOUTME: Reads come from a fallback clipboard since terminals rarely answer OSC 52 queries

package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52 copies through the terminal, which works over SSH where no local
// clipboard tool exists. Reads are served by Fallback.
type OSC52 struct {
	Out      io.Writer
	Tmux     bool
	Fallback Clipboard
}

// NewOSC52 returns an OSC52 clipboard writing to out. Inside tmux the
// sequence is wrapped in a passthrough. Written text is mirrored into an
// in-memory fallback so yanks see it.
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{
		Out:      out,
		Tmux:     os.Getenv("TMUX") != "",
		Fallback: NewMemory(""),
	}
}

// Write emits the OSC 52 sequence for text.
func (o *OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	if o.Fallback != nil {
		return o.Fallback.Write(ctx, text)
	}
	return nil
}

// Read delegates to the fallback clipboard.
func (o *OSC52) Read(ctx context.Context) (string, error) {
	if o.Fallback == nil {
		return "", fmt.Errorf("osc52 read: %w", ErrUnsupported)
	}
	return o.Fallback.Read(ctx)
}
