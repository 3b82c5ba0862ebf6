package validators

import (
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
)

// ParseID parses a positive integer identifier taken from a path or query value.
func ParseID(raw, field string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, field+" must be a positive integer").
			WithDetails(map[string]any{"field": field, "value": raw})
	}
	return value, nil
}

// OptionalID parses an identifier that may be absent.
func OptionalID(raw, field string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := ParseID(raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
