package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/jsonc"
)

// StructuredJSONConfig is the on-disk layout of the config file. Comments and
// trailing commas are stripped before decoding.
type StructuredJSONConfig struct {
	Greetd struct {
		Socket          string   `json:"socket"`
		DialTimeout     Duration `json:"dial_timeout"`
		ResponseTimeout Duration `json:"response_timeout"`
		MaxPromptRounds int      `json:"max_prompt_rounds"`
		RequireRootPeer bool     `json:"require_root_peer"`
	} `json:"greetd"`

	Identity struct {
		Username string `json:"username"`
		Session  string `json:"session"`
	} `json:"identity"`

	Launch struct {
		Wrapper           string   `json:"wrapper"`
		NoWrapper         bool     `json:"no_wrapper"`
		ExportSessionType bool     `json:"export_session_type"`
		FallbackCommand   string   `json:"fallback_command"`
		SessionDirs       []string `json:"session_dirs"`
	} `json:"launch"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	Log struct {
		File  string `json:"file"`
		Level string `json:"level"`
	} `json:"log"`

	FakeGreet struct {
		UsersFile       string   `json:"users_file"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"fakegreet"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	var jsonCfg StructuredJSONConfig
	if err = json.Unmarshal(jsonc.ToJSON(raw), &jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Greetd: Greetd{
			SocketPath:      jsonCfg.Greetd.Socket,
			DialTimeout:     time.Duration(jsonCfg.Greetd.DialTimeout),
			ResponseTimeout: time.Duration(jsonCfg.Greetd.ResponseTimeout),
			MaxPromptRounds: jsonCfg.Greetd.MaxPromptRounds,
			RequireRootPeer: jsonCfg.Greetd.RequireRootPeer,
		},
		Identity: Identity{
			Username: jsonCfg.Identity.Username,
			Session:  jsonCfg.Identity.Session,
		},
		Launch: Launch{
			Wrapper:           jsonCfg.Launch.Wrapper,
			NoWrapper:         jsonCfg.Launch.NoWrapper,
			ExportSessionType: jsonCfg.Launch.ExportSessionType,
			FallbackCommand:   jsonCfg.Launch.FallbackCommand,
			SessionDirs:       jsonCfg.Launch.SessionDirs,
		},
		Storage: Storage{DB: DB{DSN: jsonCfg.Storage.DB.DSN}},
		Log: Log{
			FilePath: jsonCfg.Log.File,
			Level:    jsonCfg.Log.Level,
		},
		FakeGreet: FakeGreet{
			UsersFile:       jsonCfg.FakeGreet.UsersFile,
			ShutdownTimeout: time.Duration(jsonCfg.FakeGreet.ShutdownTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
