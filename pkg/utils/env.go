package utils

import (
	"os"
	"strconv"
)

const (
	LogLevel        = "LOG_LEVEL"
	DealerAPI       = "DEALER_API"
	DealerToken     = "DEALER_TOKEN"
	DealerInsecure  = "DEALER_INSECURE"
	Workspace       = "WORKSPACE"
	WorkspaceSecret = "WORKSPACE_SECRET"
)

func getFromEnv(varName string) string {
	return os.Getenv(varName)
}

func GetLogLevel() string {
	return getFromEnv(LogLevel)
}

func GetDealerAPI() string {
	return getFromEnv(DealerAPI)
}

func GetDealerToken() string {
	return getFromEnv(DealerToken)
}

func GetWorkspace() string {
	return getFromEnv(Workspace)
}

func GetWorkspaceSecret() string {
	return getFromEnv(WorkspaceSecret)
}

// GetDealerInsecure reports whether DEALER_INSECURE is set to a true value.
// Unset or unparsable values mean false.
func GetDealerInsecure() bool {
	v, err := strconv.ParseBool(getFromEnv(DealerInsecure))
	return err == nil && v
}
