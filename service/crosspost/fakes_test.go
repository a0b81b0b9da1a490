package crosspost

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	medium "github.com/bezalel-media-core/crosspost/service/medium"
	models "github.com/bezalel-media-core/crosspost/service/models"
)

var errStore = errors.New("store unavailable")

type fakeUsers struct {
	users  map[string]models.MediumUser
	saves  int
	getErr error
}

func (f *fakeUsers) GetMediumUser(_ context.Context, userId string) (models.MediumUser, error) {
	if f.getErr != nil {
		return models.MediumUser{}, f.getErr
	}
	return f.users[userId], nil
}

func (f *fakeUsers) SaveMediumUser(_ context.Context, userId string, user models.MediumUser) error {
	f.saves++
	f.users[userId] = user
	return nil
}

type fakePosts struct {
	posts   map[string]models.MediumPost
	saves   int
	saveErr error
}

func (f *fakePosts) GetMediumPost(_ context.Context, postId string) (models.MediumPost, error) {
	return f.posts[postId], nil
}

func (f *fakePosts) SaveMediumPost(_ context.Context, postId string, post models.MediumPost) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.posts[postId] = post
	return nil
}

type createCall struct {
	token    string
	authorId string
	draft    medium.PostDraft
}

type fakeMedium struct {
	profile    medium.Profile
	profileErr error
	created    medium.CreatedPost
	createErr  error

	profileCalls []string
	createCalls  []createCall
}

func (f *fakeMedium) FetchProfile(token string) (medium.Profile, error) {
	f.profileCalls = append(f.profileCalls, token)
	return f.profile, f.profileErr
}

func (f *fakeMedium) CreatePost(token string, authorId string, draft medium.PostDraft) (medium.CreatedPost, error) {
	f.createCalls = append(f.createCalls, createCall{token: token, authorId: authorId, draft: draft})
	return f.created, f.createErr
}

type fakeRenderer struct{}

func (fakeRenderer) RenderPostContent(title string, body string, siteName string, permalink string) (string, error) {
	return strings.Join([]string{title, body, siteName, permalink}, "|"), nil
}

type selfOnly struct{}

func (selfOnly) CanEditUser(_ context.Context, actorId string, userId string) bool {
	return actorId == userId
}

type fakeEvents struct {
	events []PostCrossposted
	err    error
}

func (f *fakeEvents) PublishCrossposted(_ context.Context, evt PostCrossposted) error {
	f.events = append(f.events, evt)
	return f.err
}

type fakeSns struct {
	snsiface.SNSAPI
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSns) PublishWithContext(_ aws.Context, in *sns.PublishInput, _ ...request.Option) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

type fixture struct {
	users  *fakeUsers
	posts  *fakePosts
	medium *fakeMedium
	events *fakeEvents
	svc    *Service
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		users:  &fakeUsers{users: map[string]models.MediumUser{}},
		posts:  &fakePosts{posts: map[string]models.MediumPost{}},
		medium: &fakeMedium{},
		events: &fakeEvents{},
	}
	f.svc = NewService(Deps{
		Users:    f.users,
		Posts:    f.posts,
		Medium:   f.medium,
		Renderer: fakeRenderer{},
		Auth:     selfOnly{},
		Events:   f.events,
	}, opts)
	return f
}

func connectedUser() models.MediumUser {
	return models.MediumUser{
		ID:             "m-ann",
		Token:          "tok-ann-1234",
		Name:           "Ann",
		URL:            "https://medium.com/@ann",
		DefaultStatus:  models.STATUS_PUBLIC,
		DefaultLicense: models.LICENSE_CC_40_BY,
	}
}

func strPtr(s string) *string {
	return &s
}
