package recovery

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"lol-overlay/internal/constants"

	"github.com/rs/zerolog"
)

// PromptRecoverer asks the operator for a replacement API key on the
// console. It is the headless stand-in for a modal key dialog: the
// scheduler blocks on it until a key is entered or the prompt is
// abandoned with an empty line.
type PromptRecoverer struct {
	in     *bufio.Scanner
	out    io.Writer
	logger zerolog.Logger
}

func NewPromptRecoverer(logger zerolog.Logger) *PromptRecoverer {
	return &PromptRecoverer{in: bufio.NewScanner(os.Stdin), out: os.Stdout, logger: logger}
}

// RequestNewCredential blocks until the operator enters a key or gives
// up. Keys without the usual RGAPI- prefix need an explicit confirmation.
// The wait is interruptible on shutdown via ctx.
func (p *PromptRecoverer) RequestNewCredential(ctx context.Context) (string, bool) {
	fmt.Fprintln(p.out, "The current Riot API key is invalid or expired.")
	fmt.Fprintln(p.out, "Create a new key at https://developer.riotgames.com/")
	fmt.Fprint(p.out, "Enter new API key (empty to skip): ")

	key, ok := p.readLine(ctx)
	if !ok {
		return "", false
	}

	key = strings.TrimSpace(key)
	if key == "" {
		p.logger.Warn().Msg("no key entered")
		return "", false
	}

	if !strings.HasPrefix(key, constants.RiotKeyPrefix) {
		fmt.Fprint(p.out, "Key does not look like a Riot API key (RGAPI-...). Use it anyway? [y/N]: ")
		answer, ok := p.readLine(ctx)
		if !ok || !strings.EqualFold(strings.TrimSpace(answer), "y") {
			p.logger.Warn().Msg("key rejected by operator")
			return "", false
		}
	}

	return key, true
}

func (p *PromptRecoverer) readLine(ctx context.Context) (string, bool) {
	lines := make(chan string, 1)
	go func() {
		if p.in.Scan() {
			lines <- p.in.Text()
			return
		}
		close(lines)
	}()

	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		if !ok {
			return "", false
		}
		return line, true
	}
}
