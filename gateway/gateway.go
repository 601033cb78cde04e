package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const enhanceInstruction = `You are a prompt engineer for a 3d game asset pipeline.
Rewrite the user's prompt into a single, detailed prompt for a text-to-3d model.
Describe shape, materials, colors and distinctive details of one %s asset.
Keep it under 60 words. Respond with the rewritten prompt only, no quotes and no commentary.`

const conceptInstruction = "Concept art for a 3d game asset, %s style, neutral background, single subject: %s"

const metadataInstruction = `You write display metadata for 3d game assets.
Given an asset name, category and description, respond with a json object with
"tier" (integer 1-5), "rarity" (common|uncommon|rare|epic|legendary) and
"tags" (array of short lowercase strings). Respond with the json object only.`

const analyzeInstruction = `Describe the game asset shown in the image.
Respond with a json object with "caption" (one sentence), "tags" (up to 6 short
lowercase strings) and "palette" (up to 5 hex color strings). Respond with the
json object only.`

type GatewayClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewGatewayClient(ctx context.Context, c *Config) (*GatewayClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.APIKey,
	})
	if err != nil {
		return nil, err
	}
	return &GatewayClient{
		client:     client,
		textModel:  c.TextModel,
		imageModel: c.ImageModel,
	}, nil
}

// EnhancePrompt rewrites a raw user prompt into one suitable for mesh generation.
func (g *GatewayClient) EnhancePrompt(ctx context.Context, prompt string, category string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	result, err := g.client.Models.GenerateContent(ctx,
		g.textModel,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(fmt.Sprintf(enhanceInstruction, category), genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.7),
		},
	)
	if err != nil {
		return "", err
	}
	enhanced := strings.TrimSpace(result.Text())
	if enhanced == "" {
		return "", fmt.Errorf("gateway returned an empty prompt")
	}
	return enhanced, nil
}

// SuggestMetadata asks the text model for display metadata. The model is
// forced into json output mode, a reply that still fails to parse is an
// error and never a partial result.
func (g *GatewayClient) SuggestMetadata(ctx context.Context, name string, category string, description string) (map[string]interface{}, error) {
	prompt := fmt.Sprintf("Name: %s\nCategory: %s\nDescription: %s", name, category, description)
	result, err := g.client.Models.GenerateContent(ctx,
		g.textModel,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(metadataInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, err
	}
	metadata := map[string]interface{}{}
	if err := json.Unmarshal([]byte(result.Text()), &metadata); err != nil {
		return nil, fmt.Errorf("gateway returned invalid metadata json: %w", err)
	}
	return metadata, nil
}

type ImageAnalysis struct {
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
	Palette []string `json:"palette"`
}

// AnalyzeImage runs the vision model over a rendered image, the result
// seeds description and metadata of image based assets.
func (g *GatewayClient) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*ImageAnalysis, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText("Analyze this asset image."),
		}, genai.RoleUser),
	}
	result, err := g.client.Models.GenerateContent(ctx,
		g.textModel,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(analyzeInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, err
	}
	analysis := &ImageAnalysis{}
	if err := json.Unmarshal([]byte(result.Text()), analysis); err != nil {
		return nil, fmt.Errorf("gateway returned invalid analysis json: %w", err)
	}
	return analysis, nil
}

// GenerateConceptArt renders a single concept image for the prompt and
// returns the raw image bytes.
func (g *GatewayClient) GenerateConceptArt(ctx context.Context, prompt string, artStyle string) ([]byte, error) {
	if artStyle == "" {
		artStyle = "realistic"
	}
	result, err := g.client.Models.GenerateImages(ctx,
		g.imageModel,
		fmt.Sprintf(conceptInstruction, artStyle, prompt),
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(result.GeneratedImages) == 0 || result.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image returned")
	}
	return result.GeneratedImages[0].Image.ImageBytes, nil
}
