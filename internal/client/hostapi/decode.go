package hostapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/questkit/pkg/api"
	"github.com/questx-lab/questkit/pkg/errorx"
)

func decode[T any](resp *api.Response) (T, error) {
	var result T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &result,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return result, err
	}

	if err := decoder.Decode(normalize(resp.Body)); err != nil {
		return result, errorx.New(errorx.BadResponse, "Cannot decode response: %v", err)
	}

	return result, nil
}

// decodeRaw decodes responses which are not json objects, e.g. a bare boolean.
func decodeRaw[T any](resp *api.Response) (T, error) {
	var result T
	if err := json.Unmarshal(resp.RawBody, &result); err != nil {
		return result, errorx.New(errorx.BadResponse, "Cannot decode response: %v", err)
	}

	return result, nil
}

func normalize(body any) any {
	switch t := body.(type) {
	case api.JSON:
		return map[string]any(t)
	case api.Array:
		result := make([]any, 0, len(t))
		for _, e := range t {
			result = append(result, map[string]any(e))
		}
		return result
	}

	return body
}

// statusError converts an unsuccessful response to an error whose code
// matches the status.
func statusError(resp *api.Response) error {
	msg := http.StatusText(resp.Code)
	if body, ok := resp.Body.(api.JSON); ok {
		if m, err := body.GetString("message"); err == nil && m != "" {
			msg = m
		}
	}

	switch resp.Code {
	case http.StatusBadRequest:
		return errorx.New(errorx.BadRequest, "%s", msg)
	case http.StatusUnauthorized:
		return errorx.New(errorx.Unauthenticated, "%s", msg)
	case http.StatusForbidden:
		return errorx.New(errorx.PermissionDenied, "%s", msg)
	case http.StatusNotFound:
		return errorx.New(errorx.NotFound, "%s", msg)
	case http.StatusConflict:
		return errorx.New(errorx.AlreadyExists, "%s", msg)
	case http.StatusTooManyRequests:
		return errorx.New(errorx.TooManyRequests, "%s", msg)
	}

	return errorx.New(errorx.Unavailable, "%s", msg)
}

func check(resp *api.Response, err error) (*api.Response, error) {
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, statusError(resp)
	}

	return resp, nil
}
