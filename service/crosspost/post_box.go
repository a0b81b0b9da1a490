package crosspost

import (
	"context"
	"fmt"

	"github.com/bezalel-media-core/crosspost/logger"
	models "github.com/bezalel-media-core/crosspost/service/models"
)

type PostBoxState string

const (
	POST_BOX_LINKED   PostBoxState = "linked"   // already on Medium
	POST_BOX_ACTIONS  PostBoxState = "actions"  // user may pick status and license
	POST_BOX_DISABLED PostBoxState = "disabled" // user must connect first
)

// PostBox is what the post edit screen shows in its Medium panel.
type PostBox struct {
	State          PostBoxState      `json:"state"`
	MediumPost     models.MediumPost `json:"mediumPost"`
	MediumUser     models.MediumUser `json:"mediumUser"`
	LicenseHidden  bool              `json:"licenseHidden,omitempty"`
	Statuses       []models.Option   `json:"statuses,omitempty"`
	Licenses       []models.Option   `json:"licenses,omitempty"`
	EditProfileURL string            `json:"editProfileUrl,omitempty"`
}

func (s *Service) PostBox(ctx context.Context, postId string, currentUserId string) (PostBox, error) {
	mediumPost, err := s.Posts.GetMediumPost(ctx, postId)
	if err != nil {
		s.Log.Error("error loading medium post", logger.String("postID", postId), logger.Error(err))
		return PostBox{}, err
	}
	mediumUser, err := s.Users.GetMediumUser(ctx, currentUserId)
	if err != nil {
		s.Log.Error("error loading medium user", logger.String("userID", currentUserId), logger.Error(err))
		return PostBox{}, err
	}

	switch {
	case mediumPost.IsSent():
		return PostBox{State: POST_BOX_LINKED, MediumPost: mediumPost, MediumUser: mediumUser}, nil
	case mediumUser.IsConnected():
		if mediumPost.License == "" {
			mediumPost.License = mediumUser.DefaultLicense
		}
		if mediumPost.Status == "" {
			mediumPost.Status = mediumUser.DefaultStatus
		}
		return PostBox{
			State:         POST_BOX_ACTIONS,
			MediumPost:    mediumPost,
			MediumUser:    mediumUser,
			LicenseHidden: mediumPost.Status == models.STATUS_NONE,
			Statuses:      models.PostStatuses(),
			Licenses:      models.PostLicenses(),
		}, nil
	default:
		return PostBox{
			State:          POST_BOX_DISABLED,
			EditProfileURL: fmt.Sprintf(s.opts.EditProfileURL, currentUserId) + "#medium",
		}, nil
	}
}
