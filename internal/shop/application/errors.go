package application

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSampleNotFound    = errors.New("sample not found")
	ErrInvalidStatus     = errors.New("invalid sample status")
	ErrPhotosUnavailable = errors.New("photo storage not configured")
)
