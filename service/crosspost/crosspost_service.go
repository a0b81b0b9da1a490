package crosspost

import (
	"context"
	"errors"

	"github.com/bezalel-media-core/crosspost/logger"
	medium "github.com/bezalel-media-core/crosspost/service/medium"
	models "github.com/bezalel-media-core/crosspost/service/models"
	"github.com/google/uuid"
)

var ErrNotAuthorized = errors.New("not authorized to edit user")

type MediumAPI interface {
	FetchProfile(token string) (medium.Profile, error)
	CreatePost(token string, authorId string, draft medium.PostDraft) (medium.CreatedPost, error)
}

type UserStore interface {
	GetMediumUser(ctx context.Context, userId string) (models.MediumUser, error)
	SaveMediumUser(ctx context.Context, userId string, user models.MediumUser) error
}

type PostStore interface {
	GetMediumPost(ctx context.Context, postId string) (models.MediumPost, error)
	SaveMediumPost(ctx context.Context, postId string, post models.MediumPost) error
}

type ContentRenderer interface {
	RenderPostContent(title string, body string, siteName string, permalink string) (string, error)
}

type Authorizer interface {
	CanEditUser(ctx context.Context, actorId string, userId string) bool
}

type EventPublisher interface {
	PublishCrossposted(ctx context.Context, evt PostCrossposted) error
}

type Options struct {
	SiteName string
	// fmt template for the profile page link shown to unconnected authors, %s is the user id.
	EditProfileURL string
	// Medium's canonicalUrl is left empty unless this is set.
	CanonicalUrlFromPermalink bool
	// Keep the status/license chosen in the request when the Medium call fails.
	PersistOverridesOnFailure bool
}

type Deps struct {
	Users    UserStore
	Posts    PostStore
	Medium   MediumAPI
	Renderer ContentRenderer
	Auth     Authorizer
	Events   EventPublisher // optional
	Log      logger.Logger
}

// Service reacts to post saves and profile saves. It keeps no state between
// calls: every call re-reads the stores.
type Service struct {
	Deps
	opts Options
}

func NewService(deps Deps, opts Options) *Service {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	return &Service{Deps: deps, opts: opts}
}

func correlationLogger(log logger.Logger, correlationId string) logger.Logger {
	if correlationId == "" {
		correlationId = uuid.New().String()
	}
	return log.With(logger.CorrelationID(correlationId))
}
