// Package logger holds the process-wide zerolog logger of the commerce API.
//
// main calls Init once with values from config; everything else receives the
// returned logger by injection, and Get exists for code that cannot.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultService = "commerce-api"

// Options is read only by the first Init call.
type Options struct {
	Level  string    // zerolog level name, "warning" accepted; info when empty or unknown
	Pretty bool      // console writer instead of JSON lines
	Output io.Writer // os.Stdout when nil
	// Service and Env are stamped on every entry. Env is omitted when empty.
	Service string
	Env     string
}

var (
	mu   sync.Mutex
	root *zerolog.Logger
)

// Init builds the shared logger on first use and returns it. Later calls
// ignore their options and return the logger built by the first one.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return *root
	}

	l := build(opts)
	root = &l
	return l
}

// Get returns the logger built by Init and panics when Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		panic("logger: Get called before Init")
	}
	return *root
}

// Reset forgets the shared logger. Tests only.
func Reset() {
	mu.Lock()
	root = nil
	mu.Unlock()
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := opts.Output
	if w == nil {
		w = os.Stdout
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	service := opts.Service
	if service == "" {
		service = defaultService
	}
	ctx := zerolog.New(w).Level(lvl).With().Timestamp().Caller().Str("service", service)
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}
	return ctx.Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
