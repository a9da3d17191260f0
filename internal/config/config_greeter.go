package config

import (
	"fmt"
	"os"
	"time"
)

// GreeterAdapter holds the transport settings used to reach the daemon.
type GreeterAdapter struct {
	// SocketPath is the daemon's Unix socket.
	SocketPath string
	// DialTimeout bounds the connect call.
	DialTimeout time.Duration
	// ResponseTimeout bounds each wait for a response; zero waits forever.
	ResponseTimeout time.Duration
	// RequireRootPeer enables the SO_PEERCRED uid 0 check.
	RequireRootPeer bool
}

// GreeterConversation holds the login conversation settings.
type GreeterConversation struct {
	// DefaultUsername triggers create_session at startup when non-empty.
	DefaultUsername string
	// DefaultSession is the preselected session name.
	DefaultSession string
	// MaxPromptRounds bounds the number of prompts in one conversation.
	MaxPromptRounds int
}

// GreeterLaunch holds the start_session settings.
type GreeterLaunch struct {
	Wrapper           string
	ExportSessionType bool
	FallbackCommand   string
	SessionDirs       []string
}

// GreeterStorage holds the remember-store settings.
type GreeterStorage struct {
	// DSN is the SQLite database path; empty disables remembering.
	DSN string
}

// GreeterLog holds log settings.
type GreeterLog struct {
	FilePath string
	Level    string
}

// GreeterConfig is the greeter's view of [StructuredConfig].
type GreeterConfig struct {
	Adapter      GreeterAdapter
	Conversation GreeterConversation
	Launch       GreeterLaunch
	Storage      GreeterStorage
	Log          GreeterLog
}

// GetGreeterConfig builds and validates the greeter config from the process
// environment and command line.
func GetGreeterConfig() (*GreeterConfig, error) {
	return loadGreeterConfig(os.Args[1:])
}

func loadGreeterConfig(args []string) (*GreeterConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(greeterFlagSet, args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	greeterCfg := newGreeterConfig(cfg)
	return greeterCfg, greeterCfg.validate()
}

func newGreeterConfig(cfg *StructuredConfig) *GreeterConfig {
	return &GreeterConfig{
		Adapter: GreeterAdapter{
			SocketPath:      cfg.Greetd.SocketPath,
			DialTimeout:     cfg.Greetd.DialTimeout,
			ResponseTimeout: cfg.Greetd.ResponseTimeout,
			RequireRootPeer: cfg.Greetd.RequireRootPeer,
		},
		Conversation: GreeterConversation{
			DefaultUsername: cfg.Identity.Username,
			DefaultSession:  cfg.Identity.Session,
			MaxPromptRounds: cfg.Greetd.MaxPromptRounds,
		},
		Launch: GreeterLaunch{
			Wrapper:           cfg.Launch.Wrapper,
			ExportSessionType: cfg.Launch.ExportSessionType,
			FallbackCommand:   cfg.Launch.FallbackCommand,
			SessionDirs:       cfg.Launch.SessionDirs,
		},
		Storage: GreeterStorage{DSN: cfg.Storage.DB.DSN},
		Log: GreeterLog{
			FilePath: cfg.Log.FilePath,
			Level:    cfg.Log.Level,
		},
	}
}

// FakeGreetConfig is the development daemon's view of [StructuredConfig].
type FakeGreetConfig struct {
	// SocketPath is where the daemon listens.
	SocketPath string
	// UsersFile is the YAML users list.
	UsersFile string
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
	// LogLevel is a zerolog level name.
	LogLevel string
}

// GetFakeGreetConfig builds and validates the fake daemon config from the
// process environment and command line.
func GetFakeGreetConfig() (*FakeGreetConfig, error) {
	return loadFakeGreetConfig(os.Args[1:])
}

func loadFakeGreetConfig(args []string) (*FakeGreetConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(fakeGreetFlagSet, args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	fakeCfg := &FakeGreetConfig{
		SocketPath:      cfg.Greetd.SocketPath,
		UsersFile:       cfg.FakeGreet.UsersFile,
		ShutdownTimeout: cfg.FakeGreet.ShutdownTimeout,
		LogLevel:        cfg.Log.Level,
	}
	return fakeCfg, fakeCfg.validate()
}
