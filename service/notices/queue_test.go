package notices

import (
	"encoding/json"
	"errors"
	"testing"

	medium "github.com/bezalel-media-core/crosspost/service/medium"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueAddReplacesByName(t *testing.T) {
	q := NewQueue()
	q.Add(NOTICE_CONNECTED, map[string]string{"user_name": "Ann"})
	q.Add(NOTICE_PUBLISHED, nil)
	q.Add(NOTICE_CONNECTED, map[string]string{"user_name": "Bob"})

	assert.Equal(t, []Notice{
		{Name: NOTICE_CONNECTED, Args: map[string]string{"user_name": "Bob"}},
		{Name: NOTICE_PUBLISHED, Args: map[string]string{}},
	}, q.Notices())
}

func TestQueueDrainClears(t *testing.T) {
	q := NewQueue()
	q.Add(NOTICE_PUBLISHED, nil)
	assert.Len(t, q.Drain(), 1)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestAddApiErrorClassifies(t *testing.T) {
	q := NewQueue()
	q.AddApiError(&medium.ApiError{Message: "revoked", Code: 6001}, "2a9f0c1e7d")
	q.AddApiError(&medium.ApiError{Message: "disabled", Code: 6027}, "2a9f0c1e7d")
	q.AddApiError(&medium.ApiError{Message: "title too long", Code: 2005}, "2a9f0c1e7d")

	assert.Equal(t, []Notice{
		{Name: NOTICE_INVALID_TOKEN, Args: map[string]string{"token_hint": "…1e7d"}},
		{Name: NOTICE_API_DISABLED, Args: map[string]string{"token_hint": "…1e7d"}},
		{Name: NOTICE_SOMETHING_WRONG, Args: map[string]string{"token_hint": "…1e7d", "message": "title too long", "code": "2005"}},
	}, q.Notices())
}

func TestAddApiErrorForeignError(t *testing.T) {
	q := NewQueue()
	q.AddApiError(errors.New("connection reset"), "")
	n := q.Notices()[0]
	assert.Equal(t, NOTICE_SOMETHING_WRONG, n.Name)
	assert.Equal(t, "connection reset", n.Args["message"])
	assert.Equal(t, "-1", n.Args["code"])
}

func TestTokenHint(t *testing.T) {
	assert.Equal(t, "", TokenHint(""))
	assert.Equal(t, "***", TokenHint("abc"))
	assert.Equal(t, "…6789", TokenHint("123456789"))
}

func TestQueueJSONRoundTrip(t *testing.T) {
	q := NewQueue()
	q.Add(NOTICE_PUBLISHED, map[string]string{"post_url": "https://medium.com/p1"})
	q.Add(NOTICE_API_DISABLED, map[string]string{"token": "tok"})

	data, err := json.Marshal(q)
	require.NoError(t, err)

	restored := NewQueue()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, q.Notices(), restored.Notices())

	data, err = json.Marshal(NewQueue())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestQueueMerge(t *testing.T) {
	q := NewQueue()
	q.Add(NOTICE_CONNECTED, map[string]string{"user_name": "Ann"})
	other := NewQueue()
	other.Add(NOTICE_CONNECTED, map[string]string{"user_name": "Bob"})
	other.Add(NOTICE_PUBLISHED, nil)

	q.Merge(other)
	q.Merge(nil)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, "Bob", q.Notices()[0].Args["user_name"])
}
