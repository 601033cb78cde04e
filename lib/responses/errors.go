package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var AccountDeactivatedError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "Account has been suspended. Please contact support for further assistance.",
	HttpStatusCode: 401,
}

var WeakPasswordError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "password is too weak. Choose a longer or less predictable password",
	HttpStatusCode: 400,
}

var AssetNotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "asset not found",
	HttpStatusCode: 404,
}

var JobNotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "generation job not found",
	HttpStatusCode: 404,
}

var VersionNotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "version not found",
	HttpStatusCode: 404,
}

var InvalidCategoryError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid asset category",
	HttpStatusCode: 400,
}

var UnknownManifestError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "unknown manifest",
	HttpStatusCode: 400,
}

var AssetNotReadyError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "asset has no completed model yet",
	HttpStatusCode: 400,
}

var NoPreviewTaskError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "asset has no preview task to refine",
	HttpStatusCode: 400,
}

var CdnAssetImmutableError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "imported cdn assets cannot be modified",
	HttpStatusCode: 400,
}

var GenerationInProgressError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "a generation job is already running for this asset",
	HttpStatusCode: 400,
}

var MeshProviderError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "mesh provider request failed. Please try again later",
	HttpStatusCode: 502,
}

var GatewayError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "ai gateway request failed. Please try again later",
	HttpStatusCode: 502,
}

var StorageError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "asset storage request failed. Please try again later",
	HttpStatusCode: 502,
}

var GameServerError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "game server request failed. Please try again later",
	HttpStatusCode: 502,
}

var ManifestUnavailableError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "manifests are unavailable right now. Please try again later",
	HttpStatusCode: 502,
}

// auth failures are expected noise and are kept out of sentry
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	m, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	return m["code"] != 1
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		c.JSON(code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
