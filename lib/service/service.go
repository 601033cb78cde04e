package service

import (
	"context"
	"fmt"

	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/hyperforge/hyperforge.go/gateway"
	"github.com/hyperforge/hyperforge.go/lib/security"
	"github.com/hyperforge/hyperforge.go/lib/tokens"
	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/hyperforge/hyperforge.go/rabbitmq"
	"github.com/hyperforge/hyperforge.go/storage"
	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

type ForgeService struct {
	Config         *Config
	DB             *bun.DB
	MeshClient     meshy.MeshProviderWrapper
	MeshConfig     *meshy.Config
	GatewayClient  gateway.PromptGatewayWrapper
	StorageClient  storage.ObjectStorageWrapper
	StorageConfig  *storage.Config
	ManifestClient gameserver.ManifestSourceWrapper
	ManifestConfig *gameserver.Config
	Logger         *lecho.Logger
	AssetPubSub    *Pubsub
	RabbitMQClient rabbitmq.Client
	Presets        *Presets
}

// GenerateToken authenticates either with login/password or with a
// previously issued refresh token and returns a fresh token pair.
func (svc *ForgeService) GenerateToken(ctx context.Context, login, password, inRefreshToken string) (accessToken, refreshToken string, err error) {
	var user *models.User

	switch {
	case login != "" || password != "":
		{
			user, err = svc.FindUserByLogin(ctx, login)
			if err != nil {
				return "", "", fmt.Errorf("bad auth")
			}
			if !security.VerifyPassword(user.Password, password) {
				return "", "", fmt.Errorf("bad auth")
			}
		}
	case inRefreshToken != "":
		{
			userID, err := tokens.ParseRefreshToken(svc.Config.JWTSecret, inRefreshToken)
			if err != nil {
				return "", "", fmt.Errorf("bad auth")
			}
			user, err = svc.FindUser(ctx, userID)
			if err != nil {
				return "", "", fmt.Errorf("bad auth")
			}
		}
	default:
		{
			return "", "", fmt.Errorf("login and password or refresh token is required")
		}
	}

	if user.Deactivated {
		return "", "", fmt.Errorf("account deactivated")
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
