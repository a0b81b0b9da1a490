package crosspost

import (
	"context"
	"time"

	"bitbucket.org/creachadair/stringset"
	"github.com/bezalel-media-core/crosspost/logger"
	medium "github.com/bezalel-media-core/crosspost/service/medium"
	models "github.com/bezalel-media-core/crosspost/service/models"
	notices "github.com/bezalel-media-core/crosspost/service/notices"
)

// Only tags from this taxonomy are sent to Medium.
const TAXONOMY_POST_TAG = "post_tag"

type Tag struct {
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
}

// Post is the local post as the CMS saved it.
type Post struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	Status    string `json:"status"` // local publish state: publish, draft, pending, ...
	Title     string `json:"title"`
	Content   string `json:"content"`
	Permalink string `json:"permalink"`
	Tags      []Tag  `json:"tags"`
}

type SavePostEvent struct {
	Autosave bool
	Post     Post
	// Set when the edit form submitted a choice, nil otherwise.
	StatusOverride  *string
	LicenseOverride *string
	CorrelationID   string
}

type SaveOutcome string

const (
	OUTCOME_AUTOSAVE     SaveOutcome = "autosave"     // nothing read or written
	OUTCOME_ALREADY_SENT SaveOutcome = "already-sent" // terminal, never resent
	OUTCOME_STORED       SaveOutcome = "stored"       // status/license saved, no Medium call
	OUTCOME_CROSSPOSTED  SaveOutcome = "crossposted"
	OUTCOME_SEND_FAILED  SaveOutcome = "send-failed"
)

type SaveResult struct {
	Outcome    SaveOutcome       `json:"outcome"`
	MediumPost models.MediumPost `json:"mediumPost"`
}

// SavePost runs on every post save and crossposts the post to Medium when it
// is published, not opted out, not already sent, and its author is connected.
// Medium failures become notices on queue; only store failures are returned.
func (s *Service) SavePost(ctx context.Context, evt SavePostEvent, queue *notices.Queue) (SaveResult, error) {
	log := correlationLogger(s.Log, evt.CorrelationID).With(logger.String("postID", evt.Post.ID))
	if evt.Autosave {
		return SaveResult{Outcome: OUTCOME_AUTOSAVE}, nil
	}

	mediumPost, err := s.Posts.GetMediumPost(ctx, evt.Post.ID)
	if err != nil {
		log.Error("error loading medium post", logger.Error(err))
		return SaveResult{}, err
	}
	if mediumPost.IsSent() {
		return SaveResult{Outcome: OUTCOME_ALREADY_SENT, MediumPost: mediumPost}, nil
	}

	if evt.StatusOverride != nil {
		mediumPost.Status = *evt.StatusOverride
	}
	if evt.LicenseOverride != nil {
		mediumPost.License = *evt.LicenseOverride
	}

	published := evt.Post.Status == models.LOCAL_STATUS_PUBLISH
	skipCrossposting := mediumPost.Status == models.STATUS_NONE
	mediumUser, err := s.Users.GetMediumUser(ctx, evt.Post.AuthorID)
	if err != nil {
		log.Error("error loading medium user", logger.String("authorID", evt.Post.AuthorID), logger.Error(err))
		return SaveResult{}, err
	}
	connected := mediumUser.IsConnected()

	if !published || skipCrossposting || !connected {
		log.Debug("not crossposting",
			logger.Bool("published", published),
			logger.Bool("skipCrossposting", skipCrossposting),
			logger.Bool("connected", connected))
		if err := s.Posts.SaveMediumPost(ctx, evt.Post.ID, mediumPost); err != nil {
			log.Error("error saving medium post", logger.Error(err))
			return SaveResult{}, err
		}
		return SaveResult{Outcome: OUTCOME_STORED, MediumPost: mediumPost}, nil
	}

	created, err := s.createMediumPost(evt.Post, mediumPost, mediumUser)
	if err != nil {
		log.Warn("error crossposting to medium", logger.Error(err))
		queue.AddApiError(err, mediumUser.Token)
		if s.opts.PersistOverridesOnFailure {
			if err := s.Posts.SaveMediumPost(ctx, evt.Post.ID, mediumPost); err != nil {
				log.Error("error saving medium post after failed send", logger.Error(err))
				return SaveResult{}, err
			}
		}
		return SaveResult{Outcome: OUTCOME_SEND_FAILED, MediumPost: mediumPost}, nil
	}

	mediumPost.ID = created.ID
	mediumPost.URL = created.URL
	if err := s.Posts.SaveMediumPost(ctx, evt.Post.ID, mediumPost); err != nil {
		// The Medium copy exists but the link is lost, the next publish will send it again.
		log.Error("error saving medium post link", logger.String("mediumPostID", created.ID), logger.Error(err))
		return SaveResult{}, err
	}
	log.Info("crossposted to medium", logger.String("mediumPostID", created.ID))

	queue.Add(notices.NOTICE_PUBLISHED, map[string]string{
		"post_url":     mediumPost.URL,
		"status":       mediumPost.Status,
		"status_label": models.Label(models.PostStatuses(), mediumPost.Status),
	})
	s.publishCrossposted(ctx, log, evt.Post, mediumPost)
	return SaveResult{Outcome: OUTCOME_CROSSPOSTED, MediumPost: mediumPost}, nil
}

func (s *Service) createMediumPost(post Post, mediumPost models.MediumPost, mediumUser models.MediumUser) (medium.CreatedPost, error) {
	content, err := s.Renderer.RenderPostContent(post.Title, post.Content, s.opts.SiteName, post.Permalink)
	if err != nil {
		return medium.CreatedPost{}, err
	}
	canonicalUrl := ""
	if s.opts.CanonicalUrlFromPermalink {
		canonicalUrl = post.Permalink
	}
	return s.Medium.CreatePost(mediumUser.Token, mediumUser.ID, medium.PostDraft{
		Title:         post.Title,
		Content:       content,
		Tags:          tagNames(post.Tags),
		CanonicalURL:  canonicalUrl,
		License:       mediumPost.License,
		PublishStatus: mediumPost.Status,
	})
}

// tagNames keeps post_tag names in order, dropping blanks and repeats.
func tagNames(tags []Tag) []string {
	names := []string{}
	seen := stringset.New()
	for _, t := range tags {
		if t.Taxonomy != TAXONOMY_POST_TAG || t.Name == "" || seen.Contains(t.Name) {
			continue
		}
		seen.Add(t.Name)
		names = append(names, t.Name)
	}
	return names
}

func (s *Service) publishCrossposted(ctx context.Context, log logger.Logger, post Post, mediumPost models.MediumPost) {
	if s.Events == nil {
		return
	}
	err := s.Events.PublishCrossposted(ctx, PostCrossposted{
		PostID:                  post.ID,
		AuthorID:                post.AuthorID,
		MediumPostID:            mediumPost.ID,
		MediumURL:               mediumPost.URL,
		Status:                  mediumPost.Status,
		License:                 mediumPost.License,
		CrosspostedAtEpochMilli: time.Now().UnixMilli(),
	})
	if err != nil {
		log.Warn("failed publishing crosspost event", logger.Error(err))
	}
}
