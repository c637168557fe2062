package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/osvaldoandrade/spaceschema/pkg/spaceschemasdk"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiDim     = "\x1b[2m"
	ansiRed     = "\x1b[38;5;196m"
	ansiGreen   = "\x1b[38;5;82m"
	ansiYellow  = "\x1b[38;5;214m"
	ansiMagenta = "\x1b[38;5;201m"
	ansiCyan    = "\x1b[38;5;51m"
)

const (
	progressWidth = 24
	spinnerFrames = `|/-\`
	spinnerTick   = 120 * time.Millisecond
)

// renderer colors text output. Every method returns value unchanged when
// color is off, so text stays greppable in pipes and tests.
type renderer struct {
	color bool
}

func newRenderer(out io.Writer, asJSON bool) renderer {
	return renderer{color: colorEnabled(out, asJSON)}
}

func colorEnabled(out io.Writer, asJSON bool) bool {
	if asJSON || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	return isTerminal(out)
}

func spinnerEnabled(out io.Writer, asJSON bool) bool {
	return colorEnabled(out, asJSON)
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term != "" && term != "dumb"
}

func (r renderer) paint(codes, value string) string {
	if !r.color || value == "" {
		return value
	}
	return codes + value + ansiReset
}

func (r renderer) key(value string) string {
	return r.paint(ansiBold+ansiCyan, value)
}

func (r renderer) ok(value string) string {
	return r.paint(ansiBold+ansiGreen, value)
}

func (r renderer) warn(value string) string {
	return r.paint(ansiBold+ansiYellow, value)
}

func (r renderer) err(value string) string {
	return r.paint(ansiBold+ansiRed, value)
}

func (r renderer) accent(value string) string {
	return r.paint(ansiBold+ansiMagenta, value)
}

func (r renderer) dim(value string) string {
	return r.paint(ansiDim, value)
}

// progress draws done out of total as a fixed-width bar followed by the counts.
func (r renderer) progress(done, total int) string {
	filled := 0
	if total > 0 {
		done = min(max(done, 0), total)
		filled = (done*progressWidth + total/2) / total
	}
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", progressWidth-filled) + "]"
	return fmt.Sprintf("%s %d/%d", bar, done, total)
}

func (r renderer) versionTags(entry spaceschemasdk.Entry) string {
	var tags []string
	if entry.Stable {
		tags = append(tags, r.ok("stable"))
	}
	if entry.Draft {
		tags = append(tags, r.warn("draft"))
	}
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ")
}

func withSpinner(ctx context.Context, out io.Writer, enabled bool, label string, fn func() error) error {
	if !enabled {
		return fn()
	}
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	ctxDone := ctx.Done()
	for frame := 0; ; {
		select {
		case err := <-done:
			clearLine(out)
			return err
		case <-ticker.C:
			fmt.Fprintf(out, "\r%c %s", spinnerFrames[frame%len(spinnerFrames)], label)
			frame++
		case <-ctxDone:
			// fn observes ctx itself; keep drawing until it returns.
			ctxDone = nil
		}
	}
}

func clearLine(out io.Writer) {
	fmt.Fprint(out, "\r\x1b[2K")
}
