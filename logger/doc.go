/*
Package logger provides logging functionality by defining the required behavior in [Logger]
and providing an implementation of it with [RestLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [RestLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*RestLogger.Warn], [*RestLogger.Error], and [*RestLogger.Fatal] produce messages.

# RestLogger

Log messages emitted by [RestLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [WARN] controller/exception.go:43 'unknown exception class' log_context: {"format":"json","version":"1.2"}

The log context is a JSON-encoded [*LogContext].
It includes data inessential to the message proper,
like the negotiated format and API version of the request being handled.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.

# SentryLogger

When SENTRY_DSN is set, [New] returns a [SentryLogger]
which additionally ships errors attached to warn, error and fatal logs to Sentry.
*/
package logger
