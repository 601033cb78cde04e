package gameserver

import (
	"github.com/kelseyhightower/envconfig"
)

const (
	HTTP_CLIENT_TYPE  = "http"
	LOCAL_CLIENT_TYPE = "local"
)

type Config struct {
	URL              string `envconfig:"GAME_SERVER_URL"`
	Token            string `envconfig:"GAME_SERVER_TOKEN"`
	RequestTimeout   int    `envconfig:"GAME_SERVER_REQUEST_TIMEOUT" default:"30"`
	LocalManifestDir string `envconfig:"LOCAL_MANIFEST_DIR"`
	CacheTTLSeconds  int    `envconfig:"MANIFEST_CACHE_TTL" default:"300"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
