package gateway

import (
	"context"

	"github.com/ziflex/lecho/v3"
)

type PromptGatewayWrapper interface {
	EnhancePrompt(ctx context.Context, prompt string, category string) (string, error)
	SuggestMetadata(ctx context.Context, name string, category string, description string) (map[string]interface{}, error)
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*ImageAnalysis, error)
	GenerateConceptArt(ctx context.Context, prompt string, artStyle string) ([]byte, error)
}

func InitGatewayClient(c *Config, logger *lecho.Logger, ctx context.Context) (PromptGatewayWrapper, error) {
	client, err := NewGatewayClient(ctx, c)
	if err != nil {
		return nil, err
	}
	logger.Infof("Initialized ai gateway, text model: %s, image model: %s", c.TextModel, c.ImageModel)
	return client, nil
}
