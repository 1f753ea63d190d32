package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"invoicesapi/invoices-service/internal/app/invoices/entity"
	"invoicesapi/invoices-service/internal/app/invoices/service"
	"invoicesapi/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// writeServiceError переводит ошибку сервиса в HTTP статус и тело ответа
func writeServiceError(c *gin.Context, err error) {
	var unsupported *service.UnsupportedCurrencyError
	var unavailable *service.UnavailableError

	switch {
	case errors.Is(err, service.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, entity.DetailResponse{Detail: "Not found"})
	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{"currency": unsupported.Error()})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"amount": []string{"Ensure the amount converted to USD fits in a number."}})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusServiceUnavailable, entity.DetailResponse{Detail: unavailable.Detail})
	case errors.Is(err, service.ErrConversionFailed):
		c.JSON(http.StatusInternalServerError, entity.DetailResponse{Detail: err.Error()})
	default:
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, entity.DetailResponse{Detail: "Internal server error"})
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// В ответе поля называются так же, как в JSON
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// bindInvoiceRequest читает и проверяет тело запроса
// При ошибке пишет 400 и возвращает false
func bindInvoiceRequest(c *gin.Context, validate *validator.Validate, req *entity.InvoiceRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			c.JSON(http.StatusBadRequest, gin.H{typeErr.Field: []string{"Incorrect type. Expected " + expectedType(typeErr.Field) + "."}})
			return false
		}
		c.JSON(http.StatusBadRequest, entity.DetailResponse{Detail: "JSON parse error - " + err.Error()})
		return false
	}

	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return false
	}

	return true
}

func expectedType(field string) string {
	if field == "amount" {
		return "a number"
	}
	return "a string"
}

// formatValidationErrors собирает ошибки в виде {поле: [сообщения]}
func formatValidationErrors(err error) map[string][]string {
	result := make(map[string][]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		result["non_field_errors"] = []string{"Validation failed"}
		return result
	}

	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		result[field] = append(result[field], validationMessage(fieldError))
	}

	return result
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required."
	case "gt":
		return "Ensure this value is greater than " + fieldError.Param() + "."
	case "len":
		return "Ensure this field has exactly " + fieldError.Param() + " characters."
	case "alpha":
		return "Currency code must contain letters only."
	default:
		return fieldError.Field() + " is " + fieldError.Tag()
	}
}
