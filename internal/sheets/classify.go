package sheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"ClassroomAnswerLog/internal/models"

	"cloud.google.com/go/auth"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// classify maps an error from a single mirror attempt to a RemoteResult.
// stage is one of "auth", "resolve" or "append" and prefixes the cause.
func classify(ctx context.Context, stage string, err error) models.RemoteResult {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.RemoteFailure(models.FailureTimeout, fmt.Sprintf("%s: timed out", stage))
	}
	if errors.Is(err, context.Canceled) {
		return models.RemoteFailure(models.FailureTransient, fmt.Sprintf("%s: canceled", stage))
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		switch {
		case apiErr.Code == http.StatusUnauthorized:
			return models.RemoteFailure(models.FailureAuth, fmt.Sprintf("%s: authentication failed: %s", stage, msg))
		case apiErr.Code == http.StatusForbidden:
			return models.RemoteFailure(models.FailurePermission, fmt.Sprintf("%s: permission denied: %s", stage, msg))
		case apiErr.Code == http.StatusNotFound:
			return models.RemoteFailure(models.FailureNotFound, fmt.Sprintf("%s: sheet not found: %s", stage, msg))
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return models.RemoteFailure(models.FailureTransient, fmt.Sprintf("%s: transient error (%d): %s", stage, apiErr.Code, msg))
		default:
			return models.RemoteFailure(models.FailureUnknown, fmt.Sprintf("%s: %d: %s", stage, apiErr.Code, msg))
		}
	}

	// 토큰 발급 실패는 url.Error(net.Error)로 감싸져 올라옴
	var tokenErr *auth.Error
	if errors.As(err, &tokenErr) {
		return tokenFailure(stage, tokenErr.Response, tokenErr.Temporary(), err)
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return tokenFailure(stage, retrieveErr.Response, false, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return models.RemoteFailure(models.FailureTimeout, fmt.Sprintf("%s: network timeout: %v", stage, err))
		}
		return models.RemoteFailure(models.FailureTransient, fmt.Sprintf("%s: network error: %v", stage, err))
	}

	if stage == stageAuth {
		return models.RemoteFailure(models.FailureAuth, fmt.Sprintf("%s: %v", stage, err))
	}
	return models.RemoteFailure(models.FailureUnknown, fmt.Sprintf("%s: %v", stage, err))
}

// tokenFailure labels a rejected token exchange. Only throttling and server
// errors from the token endpoint are worth trying again.
func tokenFailure(stage string, resp *http.Response, temporary bool, err error) models.RemoteResult {
	if resp != nil && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) {
		temporary = true
	}
	if temporary {
		return models.RemoteFailure(models.FailureTransient, fmt.Sprintf("%s: token endpoint unavailable: %v", stage, err))
	}
	return models.RemoteFailure(models.FailureAuth, fmt.Sprintf("%s: credential rejected: %v", stage, err))
}
