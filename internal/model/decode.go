package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecodeCreateProductRequest parses a create payload. Only JSON types are
// checked here; required fields and defaults are the service's concern.
func DecodeCreateProductRequest(data []byte) (*CreateProductRequest, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	patch, err := decodeFields(fields)
	if err != nil {
		return nil, err
	}

	return &CreateProductRequest{
		Name:        patch.Name,
		Description: patch.Description,
		Price:       patch.Price,
		ImageURL:    patch.ImageURL,
		Category:    patch.Category,
	}, nil
}

// DecodeProductPatch parses an update payload into a partial update.
func DecodeProductPatch(data []byte) (ProductPatch, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return ProductPatch{}, err
	}
	return decodeFields(fields)
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrInvalidJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, ErrInvalidJSON
	}
	return fields, nil
}

func decodeFields(fields map[string]json.RawMessage) (ProductPatch, error) {
	var (
		patch ProductPatch
		err   error
	)

	if patch.Name, err = decodeString(fields, "name"); err != nil {
		return ProductPatch{}, err
	}
	if patch.Description, err = decodeString(fields, "description"); err != nil {
		return ProductPatch{}, err
	}
	if patch.ImageURL, err = decodeString(fields, "image_url"); err != nil {
		return ProductPatch{}, err
	}
	if patch.Category, err = decodeString(fields, "category"); err != nil {
		return ProductPatch{}, err
	}
	if patch.Price, err = decodePrice(fields); err != nil {
		return ProductPatch{}, err
	}

	return patch, nil
}

// decodeString returns nil for an absent or null key.
func decodeString(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, NewValidationError(fmt.Sprintf("%s must be a string", key))
	}
	return &s, nil
}

// decodePrice accepts a JSON number or a numeric string.
func decodePrice(fields map[string]json.RawMessage) (*float64, error) {
	raw, ok := fields["price"]
	if !ok || isNull(raw) {
		return nil, nil
	}

	price, err := ParsePrice(raw)
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// ParsePrice coerces a raw JSON value into a finite price.
func ParsePrice(raw json.RawMessage) (float64, error) {
	var price float64

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, ErrInvalidPrice
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, ErrInvalidPrice
		}
		price = v
	} else if err := json.Unmarshal(raw, &price); err != nil {
		return 0, ErrInvalidPrice
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidPrice
	}
	return price, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
