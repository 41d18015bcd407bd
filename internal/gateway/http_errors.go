package gateway

import (
	"net/http"

	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// httpStatusFromGRPC maps an API error to an HTTP status, an error code and
// a client-safe message.
func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.Unauthenticated:
		return http.StatusUnauthorized, "UNAUTHORIZED", st.Message()
	case codes.PermissionDenied:
		return http.StatusForbidden, "FORBIDDEN", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.AlreadyExists:
		return http.StatusConflict, "CONFLICT", st.Message()
	case codes.FailedPrecondition:
		switch st.Message() {
		case checkoutv1.ReasonEmptyCart:
			return http.StatusConflict, "EMPTY_CART", st.Message()
		case checkoutv1.ReasonInsufficientInventory:
			return http.StatusConflict, "INSUFFICIENT_INVENTORY", st.Message()
		}
		return http.StatusConflict, "CONFLICT", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", "service unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func writeGRPCError(c *gin.Context, err error) {
	code, name, msg := httpStatusFromGRPC(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(code, ErrorResponse{Error: name, Message: msg})
}

func writeError(c *gin.Context, code int, name, msg string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: name, Message: msg})
}
