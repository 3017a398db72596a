package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerFrames   = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinnerInterval = 80 * time.Millisecond
	styleSpinner    = lipgloss.NewStyle().Foreground(colorTeal)
)

// spinner animates a status line with the elapsed time while a graph loads
// and lays out. It stops when stop is called or ctx is cancelled.
type spinner struct {
	w       io.Writer
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
}

func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, message: message, cancel: cancel, stopped: make(chan struct{})}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	start := time.Now()
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			// Erase the animated line.
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			elapsed := time.Since(start).Round(100 * time.Millisecond)
			fmt.Fprintf(s.w, "\r%s %s %s",
				styleSpinner.Render(spinnerFrames[i%len(spinnerFrames)]),
				StyleDim.Render(s.message),
				StyleDim.Render(elapsed.String()))
		}
	}
}

// stop ends the animation and waits for the line to be cleared.
// Calling it more than once is safe.
func (s *spinner) stop() {
	s.cancel()
	<-s.stopped
}
