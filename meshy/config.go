package meshy

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIURL              string `envconfig:"MESHY_API_URL" default:"https://api.meshy.ai"`
	APIKey              string `envconfig:"MESHY_API_KEY" required:"true"`
	RequestTimeout      int    `envconfig:"MESHY_REQUEST_TIMEOUT" default:"30"`
	PollIntervalSeconds int    `envconfig:"MESHY_POLL_INTERVAL" default:"10"`
	PollTimeoutSeconds  int    `envconfig:"MESHY_POLL_TIMEOUT" default:"600"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
