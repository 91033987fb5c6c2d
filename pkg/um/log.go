package um

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// textHandler is a minimal slog.Handler writing one timestamped line per
// record. The engine's hot loop never logs through it; its only user is
// Machine.Run, which writes one line when a run ends in a fault.
type textHandler struct {
	out io.Writer
	mu  *sync.Mutex
}

func newLogger(out io.Writer) *slog.Logger {
	return slog.New(&textHandler{out: out, mu: &sync.Mutex{}})
}

func (h *textHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *textHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *textHandler) WithGroup(string) slog.Handler { return h }

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.String())
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, strings.Join(parts, " ")+"\n")
	return err
}
