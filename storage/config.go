package storage

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	URL            string `envconfig:"SUPABASE_URL" required:"true"`
	ServiceKey     string `envconfig:"SUPABASE_SERVICE_KEY" required:"true"`
	RequestTimeout int    `envconfig:"SUPABASE_REQUEST_TIMEOUT" default:"120"`
	ModelsBucket   string `envconfig:"SUPABASE_MODELS_BUCKET" default:"models"`
	ImagesBucket   string `envconfig:"SUPABASE_IMAGES_BUCKET" default:"images"`
	AudioBucket    string `envconfig:"SUPABASE_AUDIO_BUCKET" default:"audio"`
	ContentBucket  string `envconfig:"SUPABASE_CONTENT_BUCKET" default:"content"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
