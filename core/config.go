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

// Config holds all settings needed by the client apps.
// Values come from defaults, an optional config/.env.<env> file and env vars (in increasing precedence).
type Config struct {
	Debug   bool
	Env     string // DEV (local; default), TEST, QA, PROD
	AppName string
	Build   string

	API struct {
		BaseURL string
		Timeout time.Duration
	}

	DownloadDir  string
	PrefsPath    string
	HistoryPath  string
	RollbarToken string

	DefaultFromEmail string
	SendgridAPIKey   string

	// mock API server
	Server struct {
		Addr      string
		SecretKey string
	}
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Kampus")
	v.SetDefault("build", "develop")
	v.SetDefault("apiBaseUrl", "http://localhost:8000")
	v.SetDefault("apiTimeout", 30*time.Second)
	v.SetDefault("downloadDir", defaultPath("downloads"))
	v.SetDefault("prefsPath", defaultPath("prefs.json"))
	v.SetDefault("historyPath", defaultPath("history.db"))
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("secretKey", "kh@5y3-&6v0)d$!rq#8mz^ue2(p4c7s*1wjx9g+ln%fob=ti_a")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:            v.GetBool("debug"),
		Env:              env,
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		DownloadDir:      v.GetString("downloadDir"),
		PrefsPath:        v.GetString("prefsPath"),
		HistoryPath:      v.GetString("historyPath"),
		RollbarToken:     v.GetString("rollbarToken"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
	}
	conf.API.BaseURL = strings.TrimRight(v.GetString("apiBaseUrl"), "/")
	conf.API.Timeout = v.GetDuration("apiTimeout")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.SecretKey = v.GetString("secretKey")
	if env == "TEST" {
		conf.Debug = true
	}
	return conf
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kampus", name)
	}
	return filepath.Join(home, ".kampus", name)
}
