package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Key constants for structured log fields.
const (
	KeyComponent  = "component"
	KeyPID        = "pid"
	KeyCommand    = "command"
	KeyPlatform   = "platform"
	KeyDurationMs = "durationMs"
)

// Options configures the global logger.
type Options struct {
	Level  string    // debug, info, warn, error (default info)
	Format string    // json or console (default console)
	File   string    // append to this file when set
	Output io.Writer // takes precedence over File; nil means stderr
}

type coreHolder struct {
	core zapcore.Core
}

// switchableCore lets package-level loggers created before Init pick up the
// configured core once Init runs.
type switchableCore struct {
	state  *atomic.Value // coreHolder
	fields []zapcore.Field
}

func (c *switchableCore) materialize() zapcore.Core {
	core := c.state.Load().(coreHolder).core
	if len(c.fields) > 0 {
		core = core.With(c.fields)
	}
	return core
}

func (c *switchableCore) Enabled(lvl zapcore.Level) bool {
	return c.materialize().Enabled(lvl)
}

func (c *switchableCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &switchableCore{state: c.state, fields: merged}
}

func (c *switchableCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return c.materialize().Check(ent, ce)
}

func (c *switchableCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.materialize().Write(ent, fields)
}

func (c *switchableCore) Sync() error {
	return c.state.Load().(coreHolder).core.Sync()
}

var (
	rootState     = newState(zapcore.NewNopCore())
	defaultLogger = zap.New(&switchableCore{state: rootState})
)

func newState(core zapcore.Core) *atomic.Value {
	v := &atomic.Value{}
	v.Store(coreHolder{core: core})
	return v
}

// Init configures the global logger. The returned func closes the log file,
// if one was opened.
func Init(opts Options) (func() error, error) {
	closer := func() error { return nil }

	var ws zapcore.WriteSyncer
	switch {
	case opts.Output != nil:
		ws = zapcore.AddSync(opts.Output)
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return closer, err
		}
		ws = zapcore.Lock(f)
		closer = f.Close
	default:
		ws = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(newEncoder(opts.Format), ws, ParseLevel(opts.Level))
	rootState.Store(coreHolder{core: core})
	return closer, nil
}

// Disable routes all logging to a no-op core.
func Disable() {
	rootState.Store(coreHolder{core: zapcore.NewNopCore()})
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// L returns a logger tagged with the given component name.
func L(component string) *zap.Logger {
	return defaultLogger.With(zap.String(KeyComponent, component))
}

// Sync flushes buffered log entries.
func Sync() error {
	return defaultLogger.Sync()
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
