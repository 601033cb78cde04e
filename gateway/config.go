package gateway

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIKey     string `envconfig:"GATEWAY_API_KEY" required:"true"`
	TextModel  string `envconfig:"GATEWAY_TEXT_MODEL" default:"gemini-2.0-flash"`
	ImageModel string `envconfig:"GATEWAY_IMAGE_MODEL" default:"imagen-3.0-generate-002"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
