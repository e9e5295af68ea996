package jsonlogic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

// LogLevel is an enumeration for log message levels.
type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
)

// String converts a log level to a string for simple logging.
func (lev LogLevel) String() string {
	switch lev {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	}
	return "<unknown>"
}

// LogMsg is an enumeration for log message types.
type LogMsg int

const (
	LogOperatorDispatch LogMsg = iota
	LogParseRejected
	LogOperatorSideEffect
	LogRepositoryCacheHit
	LogRepositoryCacheMiss
	LogRepositoryCacheStale
	LogRepositoryFetchError
	LogRepositoryNewRuleSet
	LogDatasourceConnecting
	LogDatasourceDisconnected
	LogDatasourceReconnecting
	LogDatasourceError
)

func (msg LogMsg) Label() string {
	switch msg {
	case LogOperatorDispatch:
		return "OperatorDispatch"
	case LogParseRejected:
		return "ParseRejected"
	case LogOperatorSideEffect:
		return "OperatorSideEffect"
	case LogRepositoryCacheHit:
		return "RepositoryCacheHit"
	case LogRepositoryCacheMiss:
		return "RepositoryCacheMiss"
	case LogRepositoryCacheStale:
		return "RepositoryCacheStale"
	case LogRepositoryFetchError:
		return "RepositoryFetchError"
	case LogRepositoryNewRuleSet:
		return "RepositoryNewRuleSet"
	case LogDatasourceConnecting:
		return "DatasourceConnecting"
	case LogDatasourceDisconnected:
		return "DatasourceDisconnected"
	case LogDatasourceReconnecting:
		return "DatasourceReconnecting"
	case LogDatasourceError:
		return "DatasourceError"
	default:
		return "<unknown log message>"
	}
}

// template returns the message template for a log message.
func (msg LogMsg) template() *template.Template {
	t := ""
	switch msg {
	case LogOperatorDispatch:
		t = "Evaluating operator {{.op}}"
	case LogParseRejected:
		t = "Rejected rule shape (op = {{.op}}): {{.reason}}"
	case LogOperatorSideEffect:
		t = "{{.value}}"
	case LogRepositoryCacheHit:
		t = "Cache hit (key = {{.key}})"
	case LogRepositoryCacheMiss:
		t = "Cache miss (key = {{.key}})"
	case LogRepositoryCacheStale:
		t = "Serving stale rule set while refreshing (key = {{.key}})"
	case LogRepositoryFetchError:
		t = "Error fetching rule set (key = {{.key}}): {{.error}}"
	case LogRepositoryNewRuleSet:
		t = "New rule set fetched (key = {{.key}}, version = {{.version}})"
	case LogDatasourceConnecting:
		t = "Connecting to datasource: {{.url}}"
	case LogDatasourceDisconnected:
		t = "Datasource disconnected (key = {{.key}})"
	case LogDatasourceReconnecting:
		t = "Waiting to reconnect datasource: {{.key}} (delaying {{.delay}})"
	case LogDatasourceError:
		t = "Datasource error ({{.key}}): {{.error}}"
	default:
		return nil
	}
	tmpl, err := template.New("log").Parse(t)
	if err == nil {
		return tmpl
	}
	return nil
}

// LogData provides detail data for log messages.
type LogData map[string]interface{}

// JSONLog is a wrapper type used to control rendering of logging
// arguments to JSON strings when that's needed.
type JSONLog struct{ value interface{} }

// FixJSONArgs converts JSONLog arguments in a log message into
// JSONified string values.
func (data LogData) FixJSONArgs() LogData {
	retargs := LogData{}
	for k, v := range data {
		jsonv, ok := v.(JSONLog)
		if !ok {
			retargs[k] = v
			continue
		}
		d, err := json.Marshal(jsonv.value)
		if err == nil {
			retargs[k] = string(d)
		} else {
			retargs[k] = v
		}
	}
	return retargs
}

// LogMessage represents a single log message, with a level (error,
// warn, info) and message type and detail data to go with it.
type LogMessage struct {
	Level   LogLevel
	Message LogMsg
	Data    LogData
}

// String converts a log message to a string for simple logging
// applications.
func (msg *LogMessage) String() string {
	levelPrefix := "[" + msg.Level.String() + "] "

	tmpl := msg.Message.template()
	if tmpl == nil {
		return levelPrefix + "<uninterpretable log message>"
	}

	var buff bytes.Buffer
	args := msg.Data
	if args == nil {
		args = LogData{}
	}
	if err := tmpl.Execute(&buff, args.FixJSONArgs()); err != nil {
		return levelPrefix + "<log message with invalid formatting>"
	}

	return levelPrefix + buff.String()
}

// Logger is a common interface for logging information and warning
// messages (errors from Apply/Parse/Evaluate are returned directly,
// but there is useful "out of band" data provided via this interface
// instead: the "log" operator's side effects, and the
// RuleSetRepository's cache/fetch/datasource diagnostics).
type Logger interface {
	Handle(msg *LogMessage)
}

// SetLogger installs the logging interface used throughout the
// package. Leave it unset to discard all log output (the default);
// install DevLogger during development to print everything to
// standard output.
func SetLogger(userLogger Logger) {
	logger = userLogger
}

// Global private logging interface.
var logger Logger

// DevLogger is a logger instance suitable for use in development. It
// prints all logged messages to standard output.
type DevLogger struct{}

func (log DevLogger) Handle(msg *LogMessage) {
	fmt.Println(msg.String())
}

// Internal logging functions wired up to the logging interface.

func logError(msg LogMsg, args LogData) {
	if logger != nil {
		logger.Handle(&LogMessage{Error, msg, args})
	}
}

func logWarn(msg LogMsg, args LogData) {
	if logger != nil {
		logger.Handle(&LogMessage{Warn, msg, args})
	}
}

func logInfo(msg LogMsg, args LogData) {
	if logger != nil {
		logger.Handle(&LogMessage{Info, msg, args})
	}
}
