package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartapp "github.com/dwikikusuma/techhub-store/internal/cart/app"
	catalogapp "github.com/dwikikusuma/techhub-store/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
	orderapp "github.com/dwikikusuma/techhub-store/internal/order/app"
)

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// mapErr translates service errors into status errors. Anything it does not
// recognise becomes codes.Internal so its text never reaches the client.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrUnknownProduct),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, catalogapp.ErrDuplicate):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, checkoutapp.ErrEmptyCart),
		errors.Is(err, checkoutapp.ErrPaymentDeclined):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.AlreadyExists:
		return http.StatusConflict, "ALREADY_EXISTS", st.Message()
	case codes.FailedPrecondition:
		return http.StatusConflict, "FAILED_PRECONDITION", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", st.Message()
	case codes.Canceled:
		return 499, "CANCELED", st.Message()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

// respondError writes the error envelope. The original error is attached to
// the gin context so the request logger can report it.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	httpStatus, code, msg := httpStatusFromGRPC(mapErr(err))
	c.AbortWithStatusJSON(httpStatus, ErrorEnvelope{Error: APIError{Code: code, Message: msg}})
}

func respondInvalid(c *gin.Context, msg string, details map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{
		Code:    "INVALID_ARGUMENT",
		Message: msg,
		Details: details,
	}})
}
