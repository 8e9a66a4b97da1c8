package utils

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/ghodss/yaml"
	"github.com/sirupsen/logrus"
)

const (
	defaultPollIntervalSeconds = 5
	defaultTimeoutMinutes      = 10
)

type Configuration struct {
	DealerAPI           string `json:"dealer_api"`
	Token               string `json:"token,omitempty"`
	Workspace           string `json:"workspace"`
	WorkspaceSecret     string `json:"workspace_secret,omitempty"`
	Insecure            bool   `json:"insecure"`
	LogLevel            string `json:"log_level,omitempty"`
	PollIntervalSeconds uint   `json:"poll_interval_seconds"`
	TimeoutMinutes      uint   `json:"timeout_minutes"`
}

func (c Configuration) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c Configuration) Timeout() time.Duration {
	return time.Duration(c.TimeoutMinutes) * time.Minute
}

func (c Configuration) String() string {
	c.Token = sanitize(c.Token)
	c.WorkspaceSecret = sanitize(c.WorkspaceSecret)
	data, err := yaml.Marshal(&c)
	if err != nil {
		return ""
	}
	return string(data)
}

func sanitize(v string) string {
	if v == "" {
		return v
	}
	return "[sanitized]"
}

// LoadConfiguration reads a YAML or JSON file, when path is set, and then
// applies environment overrides and defaults.
func LoadConfiguration(path string) (*Configuration, error) {
	conf := Configuration{}
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Failed read configuration: %v", err)
		}
		if err := yaml.Unmarshal(data, &conf); err != nil {
			return nil, fmt.Errorf("Failed parse configuration: %v", err)
		}
	}

	if v := GetDealerAPI(); v != "" {
		conf.DealerAPI = v
	}
	if v := GetDealerToken(); v != "" {
		conf.Token = v
	}
	if v := GetWorkspace(); v != "" {
		conf.Workspace = v
	}
	if v := GetWorkspaceSecret(); v != "" {
		conf.WorkspaceSecret = v
	}
	if GetDealerInsecure() {
		conf.Insecure = true
	}
	if v := GetLogLevel(); v != "" {
		conf.LogLevel = v
	}

	if conf.PollIntervalSeconds == 0 {
		conf.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if conf.TimeoutMinutes == 0 {
		conf.TimeoutMinutes = defaultTimeoutMinutes
	}
	return &conf, nil
}

// SetupLogging sets the logrus level; an empty or unknown level keeps info.
func SetupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using %v", level, logrus.InfoLevel)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
