package meshy

import (
	"context"

	"github.com/ziflex/lecho/v3"
)

type MeshProviderWrapper interface {
	CreateTextTo3DTask(ctx context.Context, req *TextTo3DRequest) (string, error)
	CreateImageTo3DTask(ctx context.Context, req *ImageTo3DRequest) (string, error)
	CreateRetextureTask(ctx context.Context, req *RetextureRequest) (string, error)
	GetTask(ctx context.Context, family string, taskID string) (*Task, error)
	GetBalance(ctx context.Context) (int64, error)
}

func InitMeshClient(c *Config, logger *lecho.Logger, ctx context.Context) (MeshProviderWrapper, error) {
	client := NewMeshyClient(c)
	balance, err := client.GetBalance(ctx)
	if err != nil {
		return nil, err
	}
	logger.Infof("Connected to meshy, remaining credits: %d", balance)
	return client, nil
}
