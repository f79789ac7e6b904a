package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/logger"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
	"github.com/MKhiriev/openphoto-utils/models"
)

const (
	requestIDHeader = "X-Request-ID"
	listPageSize    = 100
	// debugBodyLimit caps dumped bodies at debug level 1.
	debugBodyLimit = 4096
	errorBodyLimit = 4096
)

type httpPhotoClient struct {
	client  *utils.HTTPClient
	baseURL string

	limiter   *rate.Limiter
	requestID *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPPhotoClient constructs the HTTP/REST implementation of [PhotoClient]
// from the resolved api settings. The host is normalised to a base URL
// (http:// is assumed when no scheme is given); every request is signed with
// the OAuth1 consumer and token credentials.
//
// A DebugHTTP level of 1 dumps requests and responses with truncated bodies,
// higher levels dump full bodies. A positive RateLimit caps the number of
// requests per second.
//
// Returns an error wrapping [ErrInvalidHost] if the host is empty or cannot be
// parsed as a URL.
func NewHTTPPhotoClient(settings config.APISettings, log *logger.Logger) (PhotoClient, error) {
	baseURL, err := normalizeBaseURL(settings.Host)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHost, err)
	}
	if log == nil {
		log = logger.Nop()
	}

	signer := oauth1.NewConfig(settings.ConsumerKey, settings.ConsumerSecret)
	token := oauth1.NewToken(settings.OAuthToken, settings.OAuthSecret)

	client := utils.NewHTTPClient(signer.Client(context.Background(), token))
	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{log: log})

	if settings.Timeout > 0 {
		client.SetTimeout(settings.Timeout)
	}
	if settings.DebugHTTP > 0 {
		client.SetDebug(true)
		if settings.DebugHTTP == 1 {
			client.SetDebugBodyLimit(debugBodyLimit)
		}
	}

	h := &httpPhotoClient{
		client:    client,
		baseURL:   baseURL,
		requestID: utils.NewUUIDGenerator(),
		logger:    log,
	}
	if settings.RateLimit > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(settings.RateLimit), 1)
	}

	client.OnBeforeRequest(h.beforeRequest)
	client.OnAfterResponse(h.afterResponse)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Host implements [PhotoClient].
func (h *httpPhotoClient) Host() string {
	return h.baseURL
}

// ListPhotos implements [PhotoClient]. It GETs /photos/list.json page by page
// until the page reported as the last one (totalPages) or an empty page.
func (h *httpPhotoClient) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	photos := make([]models.Photo, 0)

	for page := 1; ; page++ {
		resp, err := h.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"pageSize": strconv.Itoa(listPageSize),
				"page":     strconv.Itoa(page),
			}).
			Get("/photos/list.json")
		if err != nil {
			return nil, fmt.Errorf("list photos request: %w", err)
		}

		batch, err := decodeResult[[]models.Photo](resp)
		if err != nil {
			return nil, fmt.Errorf("list photos: %w", err)
		}
		photos = append(photos, batch...)

		if len(batch) == 0 || page >= batch[0].TotalPages {
			return photos, nil
		}
	}
}

// UploadPhoto implements [PhotoClient]. It POSTs the file as multipart form
// field "photo" to /photo/upload.json.
func (h *httpPhotoClient) UploadPhoto(ctx context.Context, path string, opts models.UploadOptions) (models.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Photo{}, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	form := map[string]string{"permission": permission(opts.Public)}
	if opts.Title != "" {
		form["title"] = opts.Title
	}
	if len(opts.Tags) > 0 {
		form["tags"] = strings.Join(opts.Tags, ",")
	}
	if len(opts.Albums) > 0 {
		form["albums"] = strings.Join(opts.Albums, ",")
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetFileReader("photo", filepath.Base(path), f).
		SetFormData(form).
		Post("/photo/upload.json")
	if err != nil {
		return models.Photo{}, fmt.Errorf("upload request: %w", err)
	}

	photo, err := decodeResult[models.Photo](resp)
	if err != nil {
		return models.Photo{}, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	return photo, nil
}

// UpdatePhoto implements [PhotoClient]. It POSTs the changed attributes to
// /photo/{id}/update.json. An empty update sends nothing.
func (h *httpPhotoClient) UpdatePhoto(ctx context.Context, id string, upd models.PhotoUpdate) (models.Photo, error) {
	if upd.IsEmpty() {
		return models.Photo{ID: id}, nil
	}

	form := make(map[string]string)
	if len(upd.AddTags) > 0 {
		form["tagsAdd"] = strings.Join(upd.AddTags, ",")
	}
	if len(upd.RemoveTags) > 0 {
		form["tagsRemove"] = strings.Join(upd.RemoveTags, ",")
	}
	if len(upd.Albums) > 0 {
		form["albumsAdd"] = strings.Join(upd.Albums, ",")
	}
	if upd.Public != nil {
		form["permission"] = permission(*upd.Public)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetFormData(form).
		Post("/photo/{id}/update.json")
	if err != nil {
		return models.Photo{}, fmt.Errorf("update request: %w", err)
	}

	photo, err := decodeResult[models.Photo](resp)
	if err != nil {
		return models.Photo{}, fmt.Errorf("update photo %s: %w", id, err)
	}
	return photo, nil
}

// CreateAlbum implements [PhotoClient]. Albums are matched by name, case
// insensitively; when the server reports a conflict the album list is read
// again.
func (h *httpPhotoClient) CreateAlbum(ctx context.Context, name string) (models.Album, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Album{}, fmt.Errorf("%w: empty album name", ErrBadRequest)
	}

	if album, ok, err := h.findAlbum(ctx, name); err != nil || ok {
		return album, err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"name": name}).
		Post("/album/create.json")
	if err != nil {
		return models.Album{}, fmt.Errorf("create album request: %w", err)
	}

	album, err := decodeResult[models.Album](resp)
	if err == nil {
		h.logger.Debug().Str("album", name).Str("id", album.ID).Msg("album created")
		return album, nil
	}
	if !errors.Is(err, ErrConflict) {
		return models.Album{}, fmt.Errorf("create album %q: %w", name, err)
	}

	album, ok, findErr := h.findAlbum(ctx, name)
	if findErr != nil {
		return models.Album{}, findErr
	}
	if !ok {
		return models.Album{}, fmt.Errorf("create album %q: %w", name, err)
	}
	return album, nil
}

func (h *httpPhotoClient) findAlbum(ctx context.Context, name string) (models.Album, bool, error) {
	albums, err := h.ListAlbums(ctx)
	if err != nil {
		return models.Album{}, false, err
	}
	for _, a := range albums {
		if strings.EqualFold(strings.TrimSpace(a.Name), name) {
			return a, true, nil
		}
	}
	return models.Album{}, false, nil
}

// ListAlbums implements [PhotoClient].
func (h *httpPhotoClient) ListAlbums(ctx context.Context) ([]models.Album, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("pageSize", "0").
		Get("/albums/list.json")
	if err != nil {
		return nil, fmt.Errorf("list albums request: %w", err)
	}

	albums, err := decodeResult[[]models.Album](resp)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// ListTags implements [PhotoClient].
func (h *httpPhotoClient) ListTags(ctx context.Context) ([]models.Tag, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/tags/list.json")
	if err != nil {
		return nil, fmt.Errorf("list tags request: %w", err)
	}

	tags, err := decodeResult[[]models.Tag](resp)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// DownloadPhoto implements [PhotoClient]. It GETs photo.PathDownload, or
// /photo/{id}/download when the photo carries no download URL, and streams
// the body to w.
func (h *httpPhotoClient) DownloadPhoto(ctx context.Context, photo models.Photo, w io.Writer) error {
	target := photo.PathDownload
	if target == "" {
		if photo.ID == "" {
			return ErrMissingDownload
		}
		target = "/photo/" + url.PathEscape(photo.ID) + "/download"
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(target)
	if err != nil {
		return fmt.Errorf("download request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(body, errorBodyLimit))
		return fmt.Errorf("download photo %s: %w", photo.ID, statusError(resp.StatusCode(), responseMessage(msg)))
	}

	if _, err = io.Copy(w, body); err != nil {
		return fmt.Errorf("download photo %s: %w", photo.ID, err)
	}
	return nil
}

func (h *httpPhotoClient) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if h.limiter != nil {
		if err := h.limiter.Wait(r.Context()); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	if r.Header.Get(requestIDHeader) == "" {
		r.SetHeader(requestIDHeader, h.requestID.Generate())
	}
	return nil
}

func (h *httpPhotoClient) afterResponse(_ *resty.Client, resp *resty.Response) error {
	h.logger.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Str("request_id", resp.Request.Header.Get(requestIDHeader)).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("api request")
	return nil
}

// decodeResult checks the HTTP status and the envelope code of resp and
// returns the envelope result.
//
// The result is decoded only after the code: error envelopes carry
// "result": false whatever the expected payload.
func decodeResult[T any](resp *resty.Response) (T, error) {
	var (
		result   T
		envelope models.Response[json.RawMessage]
	)

	if err := mapHTTPError(resp); err != nil {
		return result, err
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}
	if envelope.Code != 0 && (envelope.Code < http.StatusOK || envelope.Code >= http.StatusMultipleChoices) {
		return result, statusError(envelope.Code, envelope.Message)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return result, nil
	}
	if err := json.Unmarshal(envelope.Result, &result); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

func permission(public bool) string {
	if public {
		return models.PermissionPublic
	}
	return models.PermissionPrivate
}
