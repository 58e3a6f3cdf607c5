package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const maxBodyBytes = 64 << 10

var (
	errEmptyBody = errors.New("empty body")

	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
)

// badRequestError carries a message safe to echo back to the caller.
type badRequestError struct {
	status int
	msg    string
}

func (e *badRequestError) Error() string { return e.msg }

func initValidator() {
	validatorOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		translator, _ = uni.GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(validate, translator)
	})
}

// decodeJSON reads a bounded body into T, rejects unknown fields and runs
// struct validation.
func decodeJSON[T any](r *http.Request) (T, error) {
	initValidator()

	var dst T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, &badRequestError{status: http.StatusBadRequest, msg: errEmptyBody.Error()}
		}
		return dst, &badRequestError{status: http.StatusBadRequest, msg: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if dec.More() {
		return dst, &badRequestError{status: http.StatusBadRequest, msg: "unexpected trailing data"}
	}

	if err := validate.Struct(dst); err != nil {
		return dst, &badRequestError{status: http.StatusUnprocessableEntity, msg: validationMessage(err)}
	}

	return dst, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Translate(translator)
	}
	return err.Error()
}
