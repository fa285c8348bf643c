package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/v2rayA/beego/v2/logs"
)

var (
	logger *logs.BeeLogger
	mu     sync.Mutex
)

// ParseLevel converts a textual level into the beego level constant.
// Unknown levels fall back to info.
func ParseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return logs.LevelDebug
	case "warn", "warning":
		return logs.LevelWarn
	case "error":
		return logs.LevelError
	default:
		return logs.LevelInfo
	}
}

// InitLog (re)initializes the global logger. logWay is either "console" or "file".
func InitLog(logWay string, logFile string, logLevel string, logMaxDays int64, logDisableColor bool) {
	mu.Lock()
	defer mu.Unlock()
	l := logs.NewLogger()
	l.EnableFuncCallDepth(true)
	l.SetLogFuncCallDepth(3)
	level := ParseLevel(logLevel)
	var err error
	switch logWay {
	case "file":
		err = l.SetLogger(logs.AdapterFile, fmt.Sprintf(`{"filename":%q,"level":%d,"maxdays":%d,"daily":true}`, logFile, level, logMaxDays))
	default:
		err = l.SetLogger(logs.AdapterConsole, fmt.Sprintf(`{"level":%d,"color":%v}`, level, !logDisableColor))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "InitLog: %v\n", err)
	}
	l.SetLevel(level)
	logger = l
}

func get() *logs.BeeLogger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		l := logs.NewLogger()
		l.EnableFuncCallDepth(true)
		l.SetLogFuncCallDepth(3)
		_ = l.SetLogger(logs.AdapterConsole, `{"level":6,"color":true}`)
		logger = l
	}
	return logger
}

func Trace(format string, v ...interface{}) {
	get().Trace(format, v...)
}

func Debug(format string, v ...interface{}) {
	get().Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	get().Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	get().Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	get().Error(format, v...)
}

// Fatal logs at critical level, flushes and exits the process.
func Fatal(format string, v ...interface{}) {
	l := get()
	l.Critical(format, v...)
	l.Flush()
	os.Exit(1)
}
