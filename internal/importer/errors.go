package importer

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid importer options")
	ErrUploadsFailed  = errors.New("some photos failed to upload")
)
