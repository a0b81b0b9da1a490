package hooks

import (
	"context"
	"errors"
	"fmt"
	"sort"

	crosspost "github.com/bezalel-media-core/crosspost/service/crosspost"
	notices "github.com/bezalel-media-core/crosspost/service/notices"
)

type Hook string

const (
	HOOK_SAVE_POST                Hook = "save_post"
	HOOK_PERSONAL_OPTIONS_UPDATE  Hook = "personal_options_update"  // user edits own profile
	HOOK_EDIT_USER_PROFILE_UPDATE Hook = "edit_user_profile_update" // admin edits another user
	HOOK_ADMIN_NOTICES            Hook = "admin_notices"
	HOOK_ADD_META_BOXES_POST      Hook = "add_meta_boxes_post"
)

var (
	ErrUnknownHook = errors.New("no handler registered for hook")
	ErrPayloadType = errors.New("unexpected payload type for hook")
)

type HandlerFunc func(ctx context.Context, payload interface{}) (interface{}, error)

type SavePostPayload struct {
	Event crosspost.SavePostEvent
	Queue *notices.Queue
}

type ProfilePayload struct {
	Update crosspost.ProfileUpdate
	Queue  *notices.Queue
}

type NoticesPayload struct {
	Queue *notices.Queue
}

type PostBoxPayload struct {
	PostID string
	UserID string
}

type NoticeRenderer interface {
	RenderNotices(items []notices.Notice) (string, error)
}

// Dispatcher routes host events to their handlers. The table is fixed once built.
type Dispatcher struct {
	handlers map[Hook]HandlerFunc
}

func NewDispatcher(table map[Hook]HandlerFunc) *Dispatcher {
	handlers := make(map[Hook]HandlerFunc, len(table))
	for hook, fn := range table {
		handlers[hook] = fn
	}
	return &Dispatcher{handlers: handlers}
}

func (d *Dispatcher) Fire(ctx context.Context, hook Hook, payload interface{}) (interface{}, error) {
	fn, ok := d.handlers[hook]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHook, hook)
	}
	return fn(ctx, payload)
}

func (d *Dispatcher) Hooks() []Hook {
	result := make([]Hook, 0, len(d.handlers))
	for hook := range d.handlers {
		result = append(result, hook)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// CrosspostTable wires every hook the Medium integration listens on.
func CrosspostTable(svc *crosspost.Service, renderer NoticeRenderer) map[Hook]HandlerFunc {
	updateProfile := func(ctx context.Context, payload interface{}) (interface{}, error) {
		p, ok := payload.(ProfilePayload)
		if !ok {
			return nil, payloadError(payload)
		}
		return svc.UpdateProfile(ctx, p.Update, p.Queue)
	}
	return map[Hook]HandlerFunc{
		HOOK_SAVE_POST: func(ctx context.Context, payload interface{}) (interface{}, error) {
			p, ok := payload.(SavePostPayload)
			if !ok {
				return nil, payloadError(payload)
			}
			return svc.SavePost(ctx, p.Event, p.Queue)
		},
		HOOK_PERSONAL_OPTIONS_UPDATE:  updateProfile,
		HOOK_EDIT_USER_PROFILE_UPDATE: updateProfile,
		HOOK_ADMIN_NOTICES: func(_ context.Context, payload interface{}) (interface{}, error) {
			p, ok := payload.(NoticesPayload)
			if !ok {
				return nil, payloadError(payload)
			}
			return renderer.RenderNotices(p.Queue.Drain())
		},
		HOOK_ADD_META_BOXES_POST: func(ctx context.Context, payload interface{}) (interface{}, error) {
			p, ok := payload.(PostBoxPayload)
			if !ok {
				return nil, payloadError(payload)
			}
			return svc.PostBox(ctx, p.PostID, p.UserID)
		},
	}
}

func payloadError(payload interface{}) error {
	return fmt.Errorf("%w: %T", ErrPayloadType, payload)
}
