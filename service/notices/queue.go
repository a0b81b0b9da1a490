package notices

import (
	"encoding/json"
	"strconv"
	"strings"

	medium "github.com/bezalel-media-core/crosspost/service/medium"
)

const (
	NOTICE_CONNECTED       = "connected"
	NOTICE_PUBLISHED       = "published"
	NOTICE_INVALID_TOKEN   = string(medium.KIND_INVALID_TOKEN)
	NOTICE_API_DISABLED    = string(medium.KIND_API_DISABLED)
	NOTICE_SOMETHING_WRONG = string(medium.KIND_SOMETHING_WRONG)
)

type Notice struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args"`
}

// Queue holds the notices raised while handling one request until the next
// admin page shows them. Names are unique: adding a name again replaces its
// args but keeps its position.
type Queue struct {
	items []Notice
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Add(name string, args map[string]string) {
	if args == nil {
		args = map[string]string{}
	}
	for i := range q.items {
		if q.items[i].Name == name {
			q.items[i].Args = args
			return
		}
	}
	q.items = append(q.items, Notice{Name: name, Args: args})
}

// AddApiError queues the notice matching a failed Medium call. Unclassified
// failures carry the raw message and code. Only the token's last four
// characters are kept since notices sit in session storage.
func (q *Queue) AddApiError(err error, token string) {
	args := map[string]string{"token_hint": TokenHint(token)}
	kind := medium.Classify(err)
	if kind == medium.KIND_SOMETHING_WRONG {
		message, code := medium.Details(err)
		args["message"] = message
		args["code"] = strconv.Itoa(code)
	}
	q.Add(string(kind), args)
}

func TokenHint(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return "…" + token[len(token)-4:]
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Notices returns a copy of the queued notices without clearing them.
func (q *Queue) Notices() []Notice {
	result := make([]Notice, len(q.items))
	copy(result, q.items)
	return result
}

// Drain returns the queued notices and empties the queue.
func (q *Queue) Drain() []Notice {
	result := q.items
	q.items = nil
	return result
}

// Merge appends other's notices, later names replacing earlier ones.
func (q *Queue) Merge(other *Queue) {
	if other == nil {
		return
	}
	for _, n := range other.items {
		q.Add(n.Name, n.Args)
	}
}

func (q *Queue) MarshalJSON() ([]byte, error) {
	if q.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(q.items)
}

func (q *Queue) UnmarshalJSON(data []byte) error {
	var items []Notice
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	q.items = nil
	for _, n := range items {
		q.Add(n.Name, n.Args)
	}
	return nil
}
