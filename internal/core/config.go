package core

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server reads at startup. Room capacity is a
// deployment constant: every room created by this process has the same
// number of seats.
type Config struct {
	Addr          string        `mapstructure:"addr"`
	AllowedOrigin string        `mapstructure:"allowed_origin"`
	RoomCapacity  int           `mapstructure:"room_capacity"`
	NickMaxLen    int           `mapstructure:"nick_max_len"`
	PingInterval  time.Duration `mapstructure:"ping_interval"`
	SendBuffer    int           `mapstructure:"send_buffer"`
	DBPath        string        `mapstructure:"db_path"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
}

// LoadConfig reads config.yaml from the working directory when present and
// applies LOBBY_* environment overrides on top of the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", "0.0.0.0:8080")
	v.SetDefault("allowed_origin", "*")
	v.SetDefault("room_capacity", 4)
	v.SetDefault("nick_max_len", 24)
	v.SetDefault("ping_interval", 30*time.Second)
	v.SetDefault("send_buffer", 64)
	v.SetDefault("db_path", "matchroom-server.db")
	v.SetDefault("jwt_secret", "secret-key")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LOBBY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
