package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// flagSetFactory registers a program's flags on a fresh set and returns a
// function that converts the parsed values into a [StructuredConfig].
type flagSetFactory func() (*pflag.FlagSet, func() *StructuredConfig)

// ParseFlags parses args with the flag set produced by newFlagSet.
// A -h/--help request is returned as [pflag.ErrHelp] after usage is printed.
func ParseFlags(newFlagSet flagSetFactory, args []string) (*StructuredConfig, error) {
	fs, collect := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	return collect(), nil
}

// greeterFlagSet defines the greeter command line.
//
// Flags:
//
//	-u/--username          default identity, issues create_session at startup
//	-s/--session           preselected session name
//	-b/--background        accepted for compatibility, ignored
//	-c/--config            JSON config file path
//	--socket               daemon socket path (overrides GREETD_SOCK)
//	--wrapper              pre-exec wrapper path
//	--no-wrapper           send the session command without a wrapper
//	--export-session-type  add XDG_SESSION_TYPE/XDG_SESSION_DESKTOP to the session env
//	--fallback-command     session command used when no desktop entries exist
//	--sessions-dir         desktop entry directory, repeatable
//	--log-file             log file path
//	--log-level            log level
//	--state-db             remember store SQLite path
//	--dial-timeout         connect timeout (e.g. "5s")
//	--response-timeout     per-response timeout, 0 waits forever
//	--max-prompt-rounds    maximum prompts per conversation
//	--require-root-peer    reject a daemon socket not owned by root
func greeterFlagSet() (*pflag.FlagSet, func() *StructuredConfig) {
	var (
		username, session, background, jsonConfigPath string
		socketPath, wrapper, fallbackCommand          string
		logFile, logLevel, stateDB                    string
		sessionDirs                                   []string
		noWrapper, exportSessionType, requireRoot     bool
		dialTimeout, responseTimeout                  time.Duration
		maxPromptRounds                               int
	)

	fs := pflag.NewFlagSet("greeter", pflag.ContinueOnError)
	fs.StringVarP(&username, "username", "u", "", "Default username")
	fs.StringVarP(&session, "session", "s", "", "Default session name")
	fs.StringVarP(&background, "background", "b", "", "Background image (ignored)")
	fs.StringVarP(&jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&socketPath, "socket", "", "Session daemon socket path")
	fs.StringVar(&wrapper, "wrapper", "", "Pre-exec wrapper path")
	fs.BoolVar(&noWrapper, "no-wrapper", false, "Start the session command without a wrapper")
	fs.BoolVar(&exportSessionType, "export-session-type", false, "Export XDG_SESSION_TYPE and XDG_SESSION_DESKTOP")
	fs.StringVar(&fallbackCommand, "fallback-command", "", "Session command used when no desktop entries are found")
	fs.StringArrayVar(&sessionDirs, "sessions-dir", nil, "Desktop entry directory (repeatable)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&stateDB, "state-db", "", "Remember store SQLite path")
	fs.DurationVar(&dialTimeout, "dial-timeout", 0, "Connect timeout (e.g., 5s)")
	fs.DurationVar(&responseTimeout, "response-timeout", 0, "Response timeout, 0 waits forever")
	fs.IntVar(&maxPromptRounds, "max-prompt-rounds", 0, "Maximum prompts per conversation")
	fs.BoolVar(&requireRoot, "require-root-peer", false, "Reject a socket peer that is not root")

	return fs, func() *StructuredConfig {
		return &StructuredConfig{
			Greetd: Greetd{
				SocketPath:      socketPath,
				DialTimeout:     dialTimeout,
				ResponseTimeout: responseTimeout,
				MaxPromptRounds: maxPromptRounds,
				RequireRootPeer: requireRoot,
			},
			Identity: Identity{
				Username: username,
				Session:  session,
			},
			Launch: Launch{
				Wrapper:           wrapper,
				NoWrapper:         noWrapper,
				ExportSessionType: exportSessionType,
				FallbackCommand:   fallbackCommand,
				SessionDirs:       sessionDirs,
			},
			Storage: Storage{DB: DB{DSN: stateDB}},
			Log: Log{
				FilePath: logFile,
				Level:    logLevel,
			},
			JSONFilePath: jsonConfigPath,
		}
	}
}

// fakeGreetFlagSet defines the fake daemon command line.
//
// Flags:
//
//	-c/--config        JSON config file path
//	--socket           socket path to listen on (overrides GREETD_SOCK)
//	--users            YAML users file
//	--log-level        log level
//	--shutdown-timeout graceful shutdown bound
func fakeGreetFlagSet() (*pflag.FlagSet, func() *StructuredConfig) {
	var (
		jsonConfigPath, socketPath, usersFile, logLevel string
		shutdownTimeout                                 time.Duration
	)

	fs := pflag.NewFlagSet("fakegreet", pflag.ContinueOnError)
	fs.StringVarP(&jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&socketPath, "socket", "", "Socket path to listen on")
	fs.StringVar(&usersFile, "users", "", "YAML users file")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")

	return fs, func() *StructuredConfig {
		return &StructuredConfig{
			Greetd:       Greetd{SocketPath: socketPath},
			Log:          Log{Level: logLevel},
			FakeGreet:    FakeGreet{UsersFile: usersFile, ShutdownTimeout: shutdownTimeout},
			JSONFilePath: jsonConfigPath,
		}
	}
}
