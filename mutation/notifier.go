package mutation

import "go.uber.org/zap"

// Notifier nimmt die nutzer-sichtbaren Erfolgs-/Fehlermeldungen einer
// Mutation entgegen. Die Facade zeigt sie als transiente Toasts an.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// LogNotifier schreibt Benachrichtigungen ins strukturierte Log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Success(message string) {
	n.Logger.Info("Mutation succeeded", zap.String("notification", message))
}

func (n *LogNotifier) Failure(message string) {
	n.Logger.Warn("Mutation failed", zap.String("notification", message))
}
