// Package control terminates processes by pid through the platform kill tool.
package control

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/pranshuparmar/procmon/internal/logging"
	"github.com/pranshuparmar/procmon/internal/platform"
	"github.com/pranshuparmar/procmon/internal/proc"
)

// Kind classifies the result of a kill request.
type Kind int

const (
	Success Kind = iota
	PermissionDenied
	ProcessNotFound
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case PermissionDenied:
		return "permission denied"
	case ProcessNotFound:
		return "not found"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of one kill request. Message is empty on Success.
type Outcome struct {
	Kind    Kind
	PID     int
	Message string
}

func (o Outcome) String() string {
	if o.Message == "" {
		return fmt.Sprintf("%d: %s", o.PID, o.Kind)
	}
	return fmt.Sprintf("%d: %s: %s", o.PID, o.Kind, o.Message)
}

// OK reports whether the process was terminated.
func (o Outcome) OK() bool { return o.Kind == Success }

const elevateHint = "permission denied; re-run with elevated privileges (administrator or root)"

var (
	deniedMarkers   = []string{"access is denied", "operation not permitted", "permission denied"}
	notFoundMarkers = []string{"not found", "no such process"}
)

// Killer terminates one process.
type Killer interface {
	KillProcess(ctx context.Context, pid int) Outcome
}

// Service kills processes on one platform.
type Service struct {
	platform platform.Platform
	exec     proc.Executor
	log      *zap.Logger
}

type Option func(*Service)

func WithPlatform(p platform.Platform) Option {
	return func(s *Service) { s.platform = p }
}

func WithExecutor(e proc.Executor) Option {
	return func(s *Service) { s.exec = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func New(opts ...Option) *Service {
	s := &Service{
		platform: platform.Current(),
		exec:     &proc.RealExecutor{},
		log:      logging.L("control"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KillProcess forcibly terminates pid. It invokes the kill tool at most once
// and never retries; every failure is reported in the returned Outcome.
func (s *Service) KillProcess(ctx context.Context, pid int) Outcome {
	out := s.kill(ctx, pid)

	fields := []zap.Field{
		zap.Int(logging.KeyPID, pid),
		zap.Stringer("outcome", out.Kind),
	}
	if out.OK() {
		s.log.Info("process killed", fields...)
	} else {
		s.log.Warn("kill failed", append(fields, zap.String("message", out.Message))...)
	}
	return out
}

func (s *Service) kill(ctx context.Context, pid int) Outcome {
	if pid <= 0 {
		return Outcome{Kind: Error, PID: pid, Message: fmt.Sprintf("invalid pid %d", pid)}
	}

	name, args, err := proc.KillCommand(s.platform, pid)
	if err != nil {
		return Outcome{Kind: Error, PID: pid, Message: err.Error()}
	}

	res, err := s.exec.Run(ctx, name, args...)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Outcome{Kind: PermissionDenied, PID: pid, Message: elevateHint}
		}
		return Outcome{Kind: Error, PID: pid, Message: err.Error()}
	}

	return Classify(pid, res)
}

// Classify maps the kill tool's exit code and merged output to an Outcome.
func Classify(pid int, res proc.Result) Outcome {
	if res.ExitCode == 0 {
		return Outcome{Kind: Success, PID: pid}
	}

	raw := strings.TrimSpace(string(res.Output))
	lower := strings.ToLower(raw)
	switch {
	case containsAny(lower, deniedMarkers):
		return Outcome{Kind: PermissionDenied, PID: pid, Message: elevateHint}
	case containsAny(lower, notFoundMarkers):
		return Outcome{Kind: ProcessNotFound, PID: pid, Message: fmt.Sprintf("process %d not found", pid)}
	}

	if raw == "" {
		raw = fmt.Sprintf("kill tool exited with code %d", res.ExitCode)
	}
	return Outcome{Kind: Error, PID: pid, Message: raw}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
