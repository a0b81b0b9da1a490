package medium

import (
	"fmt"

	models "github.com/bezalel-media-core/crosspost/service/models"
	sdk "github.com/medium/medium-sdk-go"
)

const DEFAULT_HOST = "https://api.medium.com"

type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
}

type PostDraft struct {
	Title         string
	Content       string // html
	Tags          []string
	CanonicalURL  string
	License       string
	PublishStatus string
}

type CreatedPost struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Client makes the two Medium calls a crosspost needs. Each call is one
// blocking request authenticated with the user's integration token.
type Client struct {
	host string
}

func NewClient(host string) *Client {
	if host == "" {
		host = DEFAULT_HOST
	}
	return &Client{host: host}
}

func (c *Client) sdkClient(token string) *sdk.Medium {
	m := sdk.NewClientWithAccessToken(token)
	m.Host = c.host
	return m
}

// FetchProfile returns the Medium user the token belongs to (GET /v1/me).
func (c *Client) FetchProfile(token string) (Profile, error) {
	u, err := call(func() (*sdk.User, error) { return c.sdkClient(token).GetUser("") })
	if err != nil {
		return Profile{}, err
	}
	if u == nil || u.ID == "" {
		return Profile{}, emptyResponseError("user")
	}
	return Profile{ID: u.ID, Name: u.Name, URL: u.URL, ImageURL: u.ImageURL}, nil
}

// CreatePost publishes an html post under authorId (POST /v1/users/{authorId}/posts).
func (c *Client) CreatePost(token string, authorId string, draft PostDraft) (CreatedPost, error) {
	opts := sdk.CreatePostOptions{
		UserID:        authorId,
		Title:         draft.Title,
		Content:       draft.Content,
		ContentFormat: sdk.ContentFormatHTML,
		Tags:          draft.Tags,
		CanonicalURL:  draft.CanonicalURL,
	}
	if err := setPublishStatus(&opts, draft.PublishStatus); err != nil {
		return CreatedPost{}, err
	}
	if err := setLicense(&opts, draft.License); err != nil {
		return CreatedPost{}, err
	}

	p, err := call(func() (*sdk.Post, error) { return c.sdkClient(token).CreatePost(opts) })
	if err != nil {
		return CreatedPost{}, err
	}
	if p == nil || p.ID == "" {
		return CreatedPost{}, emptyResponseError("post")
	}
	return CreatedPost{ID: p.ID, URL: p.URL}, nil
}

// call runs one SDK request and converts its failure to an ApiError. The SDK
// reads errors[0] from every non-2xx reply, so a reply without an errors
// array panics inside it.
func call[T any](request func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ApiError{Message: fmt.Sprintf("unreadable medium response: %v", r), Code: TRANSPORT_ERROR_CODE}
		}
	}()
	result, err = request()
	if err != nil {
		return result, toApiError(err)
	}
	return result, nil
}

// Medium answers 2xx with an errors array or without data in some failures;
// the SDK reports neither, so a reply without an id is treated as failed.
func emptyResponseError(resource string) error {
	return &ApiError{Message: fmt.Sprintf("medium response carried no %s", resource), Code: TRANSPORT_ERROR_CODE}
}

func setPublishStatus(opts *sdk.CreatePostOptions, status string) error {
	switch status {
	case models.STATUS_PUBLIC:
		opts.PublishStatus = sdk.PublishStatusPublic
	case models.STATUS_DRAFT:
		opts.PublishStatus = sdk.PublishStatusDraft
	case models.STATUS_UNLISTED:
		opts.PublishStatus = sdk.PublishStatusUnlisted
	default:
		return &ApiError{Message: fmt.Sprintf("unsupported publish status %q", status), Code: INVALID_REQUEST_CODE}
	}
	return nil
}

// An empty license is left out of the request and Medium applies its default.
func setLicense(opts *sdk.CreatePostOptions, license string) error {
	switch license {
	case "":
	case models.LICENSE_ALL_RIGHTS_RESERVED:
		opts.License = sdk.LicenseAllRightsReserved
	case models.LICENSE_CC_40_BY:
		opts.License = sdk.LicenseCC40By
	case models.LICENSE_CC_40_BY_ND:
		opts.License = sdk.LicenseCC40ByND
	case models.LICENSE_CC_40_BY_SA:
		opts.License = sdk.LicenseCC40BySA
	case models.LICENSE_CC_40_BY_NC:
		opts.License = sdk.LicenseCC40ByNC
	case models.LICENSE_CC_40_BY_NC_ND:
		opts.License = sdk.LicenseCC40ByNCND
	case models.LICENSE_CC_40_BY_NC_SA:
		opts.License = sdk.LicenseCC40ByNCSA
	case models.LICENSE_CC_40_ZERO:
		opts.License = sdk.LicenseCC40Zero
	case models.LICENSE_PUBLIC_DOMAIN:
		opts.License = sdk.LicensePublicDomain
	default:
		return &ApiError{Message: fmt.Sprintf("unsupported license %q", license), Code: INVALID_REQUEST_CODE}
	}
	return nil
}
