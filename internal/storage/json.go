package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// LoadJSON decodes the blob under key into v. A missing key leaves v untouched and returns false.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, ok, err := s.Load(ctx, key)
	if err != nil {
		return false, wrap("load", key, err)
	}
	if !ok || len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &Error{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// SaveJSON encodes v and saves it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: "encode", Key: key, Err: err}
	}
	if err := s.Save(ctx, key, data); err != nil {
		return wrap("save", key, err)
	}
	return nil
}

// wrap turns a foreign backend error into an *Error, leaving existing ones unchanged.
func wrap(op, key string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Key: key, Err: err}
}
