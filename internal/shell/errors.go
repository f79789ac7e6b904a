package shell

import "errors"

var (
	ErrInvalidOptions  = errors.New("invalid shell options")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUsage           = errors.New("usage")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrNoDownloadURL   = errors.New("photo has no download url")
	ErrNoConfiguration = errors.New("no configuration available")
)
