package anthropic

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/echobuy/echobuy/pkg/core"
)

// anthropicError is the Messages API error envelope.
type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseError maps an API error response onto the core taxonomy.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var wire anthropicError
	if err := json.Unmarshal(body, &wire); err != nil {
		return core.NewError(core.ErrModel, string(body))
	}

	var errType core.ErrorType
	switch wire.Error.Type {
	case "invalid_request_error", "authentication_error", "permission_error", "not_found_error":
		errType = core.ErrInvalidRequest
	case "rate_limit_error":
		errType = core.ErrRateLimit
	case "overloaded_error":
		errType = core.ErrOverloaded
	default:
		errType = core.ErrModel
	}

	e := core.NewError(errType, wire.Error.Message)
	e.Code = wire.Error.Type
	return e
}
