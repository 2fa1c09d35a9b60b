package constants

import (
	"os"
	"path/filepath"
)

func GetOutputDir() string {
	path := os.Getenv("OUTPUT_PATH")
	if path != "" {
		return path
	}
	return "./output"
}

func GetTempDir() string {
	path := os.Getenv("TEMP_PATH")
	if path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "skysheet")
}

func GetScriptsDir() string {
	path := os.Getenv("SCRIPTS_PATH")
	if path != "" {
		return path
	}
	return "./scripts"
}

// GetDynamoEndpoint returns the DynamoDB endpoint for sheet metadata
// records. Empty means metadata records are disabled.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "5000"
}

const MetadataTable = "skysheet-metadata"

// Fixed header values required by downstream sheet players.
const (
	BitsPerPage = 16
	PitchLevel  = 0
)
