package logger

import "log"

// A LoggerOptFn is a functional option configuring a RestLogger when constructing a new one.
type LoggerOptFn func(*RestLogger)

// WithEnv sets the environment RestLogger is operating in.
func WithEnv(env string) func(*RestLogger) {
	return func(l *RestLogger) {
		l.env = env
	}
}

// WithLevel sets the log level RestLogger uses.
func WithLevel(level LogLevel) func(*RestLogger) {
	return func(l *RestLogger) {
		if level == LogLevelUnk {
			return
		}
		l.ll = level
	}
}

// WithLogger sets the log.Logger RestLogger uses.
func WithLogger(log *log.Logger) func(*RestLogger) {
	return func(l *RestLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) func(*RestLogger) {
	return func(l *RestLogger) {
		l.skip = skip
	}
}
