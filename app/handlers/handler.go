package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/de-scientist/brandson/app/cart"
	"github.com/de-scientist/brandson/app/helpers"
	"github.com/de-scientist/brandson/app/repositories"
	"github.com/de-scientist/brandson/app/services"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var errMissingCart = errors.New("no cart session")

// NewValidator reports field errors by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func cartKey(r *http.Request) (string, error) {
	key := helpers.CartIDFromContext(r.Context())
	if key == "" {
		return "", errMissingCart
	}
	return key, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrVariantMismatch),
		errors.Is(err, cart.ErrInvalidPrice),
		errors.Is(err, services.ErrUnknownShippingMethod),
		errors.Is(err, services.ErrUnsupportedPaymentMethod),
		errors.Is(err, errMissingCart):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, services.ErrVariantNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, services.ErrPaymentFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondError(rnd *render.Render, logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", helpers.RequestIDFromContext(r.Context())),
			zap.Error(err))
		message = "internal server error"
	}
	renderer.Error(rnd, w, status, message)
}

func respondInvalid(rnd *render.Render, w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		renderer.ValidationError(rnd, w, helpers.FormatValidationErrors(verrs))
		return
	}
	renderer.Error(rnd, w, http.StatusBadRequest, err.Error())
}
