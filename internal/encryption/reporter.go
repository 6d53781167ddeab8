package encryption

// Reporter receives per-file events from a Processor.
// *zap.SugaredLogger satisfies it.
type Reporter interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type nopReporter struct{}

func (nopReporter) Debugw(string, ...any) {}
func (nopReporter) Infow(string, ...any)  {}
func (nopReporter) Warnw(string, ...any)  {}
func (nopReporter) Errorw(string, ...any) {}
