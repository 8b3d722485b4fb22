package env

import (
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
)

// FileEnvVar names an alternative to ./.env.
const FileEnvVar = "PATCHLINK_ENV_FILE"

var (
	fileOnce sync.Once
	fileVars map[string]string
)

func loadFile() {
	path := os.Getenv(FileEnvVar)
	if path == "" {
		path = ".env"
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) || path != ".env" {
			glog.Warningf("env file %s: %v", path, err)
		}
		return
	}
	fileVars = vars
}

// Getenv returns the value of key from the process environment, falling
// back to the .env file.
func Getenv(key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	fileOnce.Do(loadFile)
	return fileVars[key]
}
