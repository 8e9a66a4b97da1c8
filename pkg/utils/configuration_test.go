package utils

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func Assert(want, got interface{}, t *testing.T) {
	if !reflect.DeepEqual(want, got) {
		_, file, line, _ := runtime.Caller(1)
		splitted := strings.Split(file, string(os.PathSeparator))
		t.Fatalf("%v:%v: Failed: got %v, want %v", splitted[len(splitted)-1], line, got, want)
	}
}

func setEnv(t *testing.T, key, value string) {
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func clearEnv(t *testing.T) {
	for _, key := range []string{LogLevel, DealerAPI, DealerToken, DealerInsecure, Workspace, WorkspaceSecret} {
		setEnv(t, key, "")
	}
}

var confYaml = `
dealer_api: https://dealer.example
workspace: demo
token: file-token
poll_interval_seconds: 2
`

func TestLoadConfigurationFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := ioutil.WriteFile(path, []byte(confYaml), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatal(err)
	}
	Assert("https://dealer.example", conf.DealerAPI, t)
	Assert("demo", conf.Workspace, t)
	Assert("file-token", conf.Token, t)
	Assert(2*time.Second, conf.PollInterval(), t)
	Assert(10*time.Minute, conf.Timeout(), t)
	Assert(false, conf.Insecure, t)
	Assert(false, strings.Contains(conf.String(), "file-token"), t)
}

func TestLoadConfigurationEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf.json")
	if err := ioutil.WriteFile(path, []byte(`{"dealer_api": "http://file", "timeout_minutes": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	setEnv(t, DealerAPI, "http://env")
	setEnv(t, DealerInsecure, "true")
	setEnv(t, Workspace, "env-ws")

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatal(err)
	}
	Assert("http://env", conf.DealerAPI, t)
	Assert("env-ws", conf.Workspace, t)
	Assert(true, conf.Insecure, t)
	Assert(time.Minute, conf.Timeout(), t)
	Assert(5*time.Second, conf.PollInterval(), t)
}

func TestLoadConfigurationErrors(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := ioutil.WriteFile(path, []byte("dealer_api: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfiguration(path); err == nil {
		t.Fatal("expected error for malformed file")
	}

	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	Assert("", conf.DealerAPI, t)
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())

	SetupLogging("debug")
	Assert(logrus.DebugLevel, logrus.GetLevel(), t)
	SetupLogging("verbose")
	Assert(logrus.InfoLevel, logrus.GetLevel(), t)
	SetupLogging("")
	Assert(logrus.InfoLevel, logrus.GetLevel(), t)
}
