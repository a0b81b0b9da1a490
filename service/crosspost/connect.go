package crosspost

import (
	"context"

	"github.com/bezalel-media-core/crosspost/logger"
	models "github.com/bezalel-media-core/crosspost/service/models"
	notices "github.com/bezalel-media-core/crosspost/service/notices"
)

type ProfileUpdate struct {
	ActorID        string
	UserID         string
	Token          string
	DefaultStatus  string
	DefaultLicense string
	CorrelationID  string
}

type ProfileOutcome string

const (
	PROFILE_UNCHANGED      ProfileOutcome = "unchanged" // token same as stored
	PROFILE_CONNECTED      ProfileOutcome = "connected"
	PROFILE_DISCONNECTED   ProfileOutcome = "disconnected"
	PROFILE_CONNECT_FAILED ProfileOutcome = "connect-failed"
)

type ProfileResult struct {
	Outcome    ProfileOutcome    `json:"outcome"`
	MediumUser models.MediumUser `json:"mediumUser"`
}

// UpdateProfile saves a user's crosspost defaults and connects, reconnects or
// disconnects their Medium account depending on the submitted token.
// The user is always saved, so defaults survive a failed connect.
func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate, queue *notices.Queue) (ProfileResult, error) {
	log := correlationLogger(s.Log, update.CorrelationID).With(
		logger.String("userID", update.UserID),
		logger.String("actorID", update.ActorID))
	if !s.Auth.CanEditUser(ctx, update.ActorID, update.UserID) {
		log.Warn("rejected profile update")
		return ProfileResult{}, ErrNotAuthorized
	}

	mediumUser, err := s.Users.GetMediumUser(ctx, update.UserID)
	if err != nil {
		log.Error("error loading medium user", logger.Error(err))
		return ProfileResult{}, err
	}
	mediumUser.DefaultStatus = update.DefaultStatus
	mediumUser.DefaultLicense = update.DefaultLicense

	outcome := PROFILE_UNCHANGED
	switch {
	case update.Token == "":
		if mediumUser.ID != "" || mediumUser.Token != "" {
			outcome = PROFILE_DISCONNECTED
		}
		mediumUser.Disconnect()
	case update.Token != mediumUser.Token:
		profile, err := s.Medium.FetchProfile(update.Token)
		if err != nil {
			log.Warn("error connecting medium account", logger.Error(err))
			queue.AddApiError(err, update.Token)
			outcome = PROFILE_CONNECT_FAILED
			break
		}
		mediumUser.ID = profile.ID
		mediumUser.Name = profile.Name
		mediumUser.ImageURL = profile.ImageURL
		mediumUser.URL = profile.URL
		mediumUser.Token = update.Token
		queue.Add(notices.NOTICE_CONNECTED, map[string]string{
			"user_name":      profile.Name,
			"user_url":       profile.URL,
			"user_image_url": profile.ImageURL,
		})
		outcome = PROFILE_CONNECTED
		log.Info("connected medium account", logger.String("mediumUserID", profile.ID))
	}

	if err := s.Users.SaveMediumUser(ctx, update.UserID, mediumUser); err != nil {
		log.Error("error saving medium user", logger.Error(err))
		return ProfileResult{}, err
	}
	return ProfileResult{Outcome: outcome, MediumUser: mediumUser}, nil
}
