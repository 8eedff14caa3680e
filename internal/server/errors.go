package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	accountdomain "github.com/smallbiznis/backoffice/internal/account/domain"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	companydomain "github.com/smallbiznis/backoffice/internal/company/domain"
	dashboarddomain "github.com/smallbiznis/backoffice/internal/dashboard/domain"
	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	ledgerdomain "github.com/smallbiznis/backoffice/internal/ledger/domain"
	manufacturedomain "github.com/smallbiznis/backoffice/internal/manufacture/domain"
	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	seeddomain "github.com/smallbiznis/backoffice/internal/seed/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var stockErr *inventorydomain.InsufficientStockError
	if errors.As(err, &stockErr) {
		fields := make([]ValidationError, 0, len(stockErr.Lines))
		for _, line := range stockErr.Lines {
			fields = append(fields, ValidationError{
				Field:   line.ProductName,
				Code:    "insufficient_stock",
				Message: (&inventorydomain.InsufficientStockError{Lines: []inventorydomain.InsufficientLine{line}}).Error(),
			})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "insufficient_stock",
			Message: stockErr.Error(),
			Errors:  fields,
		}
	}

	var paymentErr *ledgerdomain.PaymentError
	if errors.As(err, &paymentErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: paymentErr.Error(),
			Errors: []ValidationError{
				{
					Field:   "paid_amount",
					Code:    "invalid_paid_amount",
					Message: paymentErr.Error(),
				},
			},
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrWeakPassword),
		errors.Is(err, accountdomain.ErrInvalidName),
		errors.Is(err, accountdomain.ErrInvalidType),
		errors.Is(err, accountdomain.ErrInvalidStatus),
		errors.Is(err, accountdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, productdomain.ErrInvalidStock),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, inventorydomain.ErrInvalidID),
		errors.Is(err, inventorydomain.ErrInvalidQuantity),
		errors.Is(err, ledgerdomain.ErrInvalidID),
		errors.Is(err, ledgerdomain.ErrInvalidType),
		errors.Is(err, ledgerdomain.ErrInvalidAmount),
		errors.Is(err, ledgerdomain.ErrOrderLinked),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrInvalidType),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrEmptyOrder),
		errors.Is(err, orderdomain.ErrInvalidQuantity),
		errors.Is(err, orderdomain.ErrInvalidPrice),
		errors.Is(err, orderdomain.ErrNoTransaction),
		errors.Is(err, manufacturedomain.ErrInvalidID),
		errors.Is(err, manufacturedomain.ErrEmptyBatch),
		errors.Is(err, manufacturedomain.ErrInvalidQuantity):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, accountdomain.ErrInvalidTenant),
		errors.Is(err, productdomain.ErrInvalidTenant),
		errors.Is(err, inventorydomain.ErrInvalidTenant),
		errors.Is(err, ledgerdomain.ErrInvalidTenant),
		errors.Is(err, orderdomain.ErrInvalidTenant),
		errors.Is(err, manufacturedomain.ErrInvalidTenant),
		errors.Is(err, dashboarddomain.ErrInvalidTenant),
		errors.Is(err, companydomain.ErrInvalidTenant),
		errors.Is(err, seeddomain.ErrInvalidTenant):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	var hasOrders *accountdomain.HasOrdersError
	var inUse *productdomain.InUseError
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrEmailTaken),
		errors.As(err, &hasOrders),
		errors.As(err, &inUse):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	var hasOrders *accountdomain.HasOrdersError
	if errors.As(err, &hasOrders) {
		return hasOrders.Error()
	}
	var inUse *productdomain.InUseError
	if errors.As(err, &inUse) {
		return inUse.Error()
	}
	if errors.Is(err, authdomain.ErrEmailTaken) {
		return "email already registered"
	}
	return "conflict"
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, accountdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, inventorydomain.ErrProductNotFound),
		errors.Is(err, ledgerdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrAccountNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "invalid_request" {
		return "request"
	}
	return ""
}

func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}
