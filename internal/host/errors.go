package host

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/questkit/pkg/errorx"
)

// userRejectedCode is the EIP-1193 code of a request rejected by the user.
const userRejectedCode = 4001

var ErrUserRejected = errorx.New(errorx.UserRejected, "User rejected the request")

// IsUserRejection reports whether err means the user refused to sign or send
// a request in the wallet. Hosts should return ErrUserRejected; errors coming
// straight from wallet providers are recognized by their EIP-1193 code or, as
// a last resort, by their message.
func IsUserRejection(err error) bool {
	if err == nil {
		return false
	}

	if errorx.Is(err, errorx.UserRejected) {
		return true
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied")
}
