package models

// Crosspost visibility chosen for a post, "none" opts out of crossposting.
const (
	STATUS_NONE     = "none"
	STATUS_PUBLIC   = "public"
	STATUS_DRAFT    = "draft"
	STATUS_UNLISTED = "unlisted"
)

const (
	LICENSE_ALL_RIGHTS_RESERVED = "all-rights-reserved"
	LICENSE_CC_40_BY            = "cc-40-by"
	LICENSE_CC_40_BY_ND         = "cc-40-by-nd"
	LICENSE_CC_40_BY_SA         = "cc-40-by-sa"
	LICENSE_CC_40_BY_NC         = "cc-40-by-nc"
	LICENSE_CC_40_BY_NC_ND      = "cc-40-by-nc-nd"
	LICENSE_CC_40_BY_NC_SA      = "cc-40-by-nc-sa"
	LICENSE_CC_40_ZERO          = "cc-40-zero"
	LICENSE_PUBLIC_DOMAIN       = "public-domain"
)

// Local post state that makes a post eligible for crossposting.
const LOCAL_STATUS_PUBLISH = "publish"

// MediumUser is the Medium account linked to one local user.
type MediumUser struct {
	ID             string `json:"id"` // Medium's remote user id, empty when not connected.
	Token          string `json:"-"`  // Integration token, never serialized to clients.
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	URL            string `json:"url"`
	DefaultStatus  string `json:"defaultStatus"`
	DefaultLicense string `json:"defaultLicense"`
}

// NewMediumUser builds a user from stored metadata, absent keys stay empty.
func NewMediumUser(meta map[string]string) MediumUser {
	return MediumUser{
		ID:             meta[META_USER_ID],
		Token:          meta[META_USER_TOKEN],
		Name:           meta[META_USER_NAME],
		ImageURL:       meta[META_USER_IMAGE_URL],
		URL:            meta[META_USER_URL],
		DefaultStatus:  meta[META_USER_DEFAULT_STATUS],
		DefaultLicense: meta[META_USER_DEFAULT_LICENSE],
	}
}

func (u MediumUser) IsConnected() bool {
	return u.ID != "" && u.Token != ""
}

// Disconnect clears the Medium identity but keeps the crosspost defaults.
func (u *MediumUser) Disconnect() {
	u.ID = ""
	u.Token = ""
	u.Name = ""
	u.ImageURL = ""
	u.URL = ""
}

func (u MediumUser) Meta() map[string]string {
	return map[string]string{
		META_USER_DEFAULT_LICENSE: u.DefaultLicense,
		META_USER_DEFAULT_STATUS:  u.DefaultStatus,
		META_USER_ID:              u.ID,
		META_USER_IMAGE_URL:       u.ImageURL,
		META_USER_NAME:            u.Name,
		META_USER_TOKEN:           u.Token,
		META_USER_URL:             u.URL,
	}
}

// MediumPost links a local post to its Medium copy.
// Once ID is set the post has been sent and is never sent again.
type MediumPost struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Status  string `json:"status"`
	License string `json:"license"`
}

func NewMediumPost(meta map[string]string) MediumPost {
	return MediumPost{
		ID:      meta[META_POST_ID],
		URL:     meta[META_POST_URL],
		Status:  meta[META_POST_STATUS],
		License: meta[META_POST_LICENSE],
	}
}

func (p MediumPost) IsSent() bool {
	return p.ID != ""
}

func (p MediumPost) Meta() map[string]string {
	return map[string]string{
		META_POST_ID:      p.ID,
		META_POST_LICENSE: p.License,
		META_POST_STATUS:  p.Status,
		META_POST_URL:     p.URL,
	}
}
