// Package notify carries user-facing feedback out of the stores. The UI
// layer supplies its own Notifier; the slog implementation here is what the
// demo CLI and tests use.
package notify

import "log/slog"

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier receives fire-and-forget user feedback. Implementations must not
// block.
type Notifier interface {
	Notify(n Notification)
}

type slogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) Notifier {
	return &slogNotifier{logger: logger}
}

func (s *slogNotifier) Notify(n Notification) {
	attrs := []any{
		slog.String("title", n.Title),
		slog.String("description", n.Description),
	}

	if n.Variant == VariantDestructive {
		s.logger.Warn("notification", attrs...)
		return
	}

	s.logger.Info("notification", attrs...)
}
