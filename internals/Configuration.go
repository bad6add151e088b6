package internals

import (
	"os"

	"github.com/caarlos0/env"
	"github.com/tidwall/gjson"
)

type Configuration struct {
	RepoDirectory        string `env:"REPO_DIRECTORY" envDefault:"/config"`
	ServerPort           int    `env:"SERVER_PORT" envDefault:"8080"`
	GitHistoryCount      int    `env:"GIT_HISTORY_COUNT" envDefault:"500"`
	CliCmdTimeoutSec     int    `env:"CLI_CMD_TIMEOUT_SEC" envDefault:"30"`
	CliCmdMaxOutputBytes int    `env:"CLI_CMD_MAX_OUTPUT_BYTES" envDefault:"10485760"` // 10 MB
	UseGitCli            bool   `env:"USE_GIT_CLI" envDefault:"true"`
	EnableHeadWatcher    bool   `env:"ENABLE_HEAD_WATCHER" envDefault:"true"`
	WatchIntervalMin     int    `env:"WATCH_INTERVAL_MIN" envDefault:"5"`
	AddonOptionsFile     string `env:"ADDON_OPTIONS_FILE" envDefault:"/data/options.json"`
}

func ParseConfiguration() (*Configuration, error) {
	cfg := &Configuration{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}
	cfg.loadAddonOptions()
	return cfg, nil
}

// loadAddonOptions overlays values from the Supervisor add-on options file
// when one is mounted. Options win over environment values.
func (cfg *Configuration) loadAddonOptions() {
	data, err := os.ReadFile(cfg.AddonOptionsFile)
	if err != nil {
		return
	}
	cfg.applyAddonOptions(data)
}

func (cfg *Configuration) applyAddonOptions(data []byte) {
	if v := gjson.GetBytes(data, "repo_directory"); v.Exists() {
		cfg.RepoDirectory = v.String()
	}
	if v := gjson.GetBytes(data, "history_count"); v.Exists() {
		cfg.GitHistoryCount = int(v.Int())
	}
	if v := gjson.GetBytes(data, "command_timeout_seconds"); v.Exists() {
		cfg.CliCmdTimeoutSec = int(v.Int())
	}
	if v := gjson.GetBytes(data, "use_git_cli"); v.Exists() {
		cfg.UseGitCli = v.Bool()
	}
	if v := gjson.GetBytes(data, "watch_interval_minutes"); v.Exists() {
		cfg.WatchIntervalMin = int(v.Int())
	}
	if v := gjson.GetBytes(data, "enable_head_watcher"); v.Exists() {
		cfg.EnableHeadWatcher = v.Bool()
	}
}
