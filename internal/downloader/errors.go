package downloader

import "errors"

var (
	ErrInvalidOptions   = errors.New("invalid downloader options")
	ErrNotDirectory     = errors.New("no such directory")
	ErrLocked           = errors.New("another download is running in this directory")
	ErrHashMismatch     = errors.New("downloaded file does not match the photo hash")
	ErrDownloadsFailed  = errors.New("some photos failed to download")
	ErrMissingPhotoName = errors.New("photo has neither hash nor id")
)
