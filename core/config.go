package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by storage.Open.
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type (
	ServerConfig struct {
		Address         string
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	StorageConfig struct {
		Driver string
		Path   string // bolt file
		DSN    string // sqlite3 / postgres
	}

	AuthConfig struct {
		HashPasswords bool
		SeedDemoUsers bool
	}

	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		Storage      StorageConfig
		Auth         AuthConfig
	}
)

// NewConfig reads the configuration for the current ENV (DEV by default) from the environment
// and, when present, from config/.env.<env> under the project root.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "LearnFlow")
	v.SetDefault("build", "dev")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("storage.driver", DriverBolt)
	v.SetDefault("storage.path", filepath.Join("data", "learnflow.db"))
	v.SetDefault("storage.dsn", "")
	v.SetDefault("auth.hashPasswords", false)
	v.SetDefault("auth.seedDemoUsers", false)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("storage.driver", DriverMemory)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			Host:            v.GetString("server.host"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
			Path:   v.GetString("storage.path"),
			DSN:    v.GetString("storage.dsn"),
		},
		Auth: AuthConfig{
			HashPasswords: v.GetBool("auth.hashPasswords"),
			SeedDemoUsers: v.GetBool("auth.seedDemoUsers"),
		},
	}
}

// Getwd tries to find the project root (the directory holding go.mod).
// go test runs from the package directory, so we walk up from there.
// Installed binaries have no go.mod around them: the working directory is used as is.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
