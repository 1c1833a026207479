package core

import (
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database engines
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineBolt     = "bolt"
	EngineMemory   = "memory"
)

// Notifier channels
const (
	ChannelConsoleEmail = "console-email"
	ChannelConsoleSMS   = "console-sms"
	ChannelEmail        = "email"
)

type (
	ServerConfig struct {
		Host string
		Port int
	}

	DatabaseConfig struct {
		Engine     string
		Path       string // sqlite & bolt file
		Name       string
		Host       string
		Port       int
		User       string
		Password   string
		DisableTLS bool
	}

	NotifierConfig struct {
		Channel    string
		Recipients []string
	}

	Config struct {
		Env            string
		Debug          bool
		TestMode       bool
		Build          string
		AppName        string
		SchoolName     string
		SendgridApiKey string
		RollbarToken   string
		Server         ServerConfig
		Database       DatabaseConfig
		Notifier       NotifierConfig

		defaultFromEmail string
	}
)

func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}

// NotifierRecipients parses the configured report recipients, skipping malformed addresses.
func (c *Config) NotifierRecipients() []mail.Address {
	addrs := make([]mail.Address, 0, len(c.Notifier.Recipients))
	for _, r := range c.Notifier.Recipients {
		if addr, err := mail.ParseAddress(CleanString(r)); err == nil {
			addrs = append(addrs, *addr)
		}
	}
	return addrs
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Masomo")
	v.SetDefault("schoolName", "Bright Future School")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8000)

	v.SetDefault("database.engine", EngineSQLite)
	v.SetDefault("database.path", "school.db")
	v.SetDefault("database.name", "masomo")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", false)

	v.SetDefault("notifier.channel", ChannelConsoleEmail)
	v.SetDefault("notifier.recipients", "")
}

// NewConfig loads the configuration for the current ENV (DEV (local; default), TEST, QA, PROD).
// Values come from the environment (prefixed with ENV, eg. DEV_DATABASE_ENGINE),
// optionally seeded from `config/.env.<env>`.
func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return fromViper(env, v)
}

func fromViper(env string, v *viper.Viper) *Config {
	conf := &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SchoolName:       v.GetString("schoolName"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Database: DatabaseConfig{
			Engine:     strings.ToLower(v.GetString("database.engine")),
			Path:       v.GetString("database.path"),
			Name:       v.GetString("database.name"),
			Host:       v.GetString("database.host"),
			Port:       v.GetInt("database.port"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
		Notifier: NotifierConfig{
			Channel: strings.ToLower(v.GetString("notifier.channel")),
		},
	}
	for _, r := range strings.Split(v.GetString("notifier.recipients"), ",") {
		if r = CleanString(r); r != "" {
			conf.Notifier.Recipients = append(conf.Notifier.Recipients, r)
		}
	}
	return conf
}

// NewTestConfig returns the defaults with an in-memory database and test mode on.
func NewTestConfig() *Config {
	v := viper.New()
	setDefaults(v)
	v.Set("testMode", true)
	v.Set("database.engine", EngineMemory)
	return fromViper("TEST", v)
}

func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(fmt.Errorf("config.os.Getwd: %v", err))
	}
	return filepath.Join(wd, "config")
}
