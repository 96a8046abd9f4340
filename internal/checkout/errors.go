package checkout

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyCart  = errors.New("cart is empty, nothing to checkout")
	ErrValidation = errors.New("validation failed")
)

// ValidationError maps a form field to the message shown next to it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
