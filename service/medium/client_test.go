package medium

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/me", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":"u1","username":"ann","name":"Ann","url":"https://medium.com/@ann","imageUrl":"https://img/ann.png"}}`)
	}))
	defer srv.Close()

	profile, err := NewClient(srv.URL).FetchProfile("tok")
	require.NoError(t, err)
	assert.Equal(t, Profile{ID: "u1", Name: "Ann", URL: "https://medium.com/@ann", ImageURL: "https://img/ann.png"}, profile)
}

func TestFetchProfileApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":[{"message":"Token was invalid.","code":6003},{"message":"ignored","code":1}]}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchProfile("bad")
	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 6003, apiErr.Code)
	assert.Equal(t, "Token was invalid.", apiErr.Message)
	assert.Equal(t, KIND_INVALID_TOKEN, Classify(err))
}

func TestFetchProfileUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchProfile("tok")
	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, TRANSPORT_ERROR_CODE, apiErr.Code)
	assert.Equal(t, KIND_SOMETHING_WRONG, Classify(err))
}

func TestFetchProfileTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	host := srv.URL
	srv.Close()

	_, err := NewClient(host).FetchProfile("tok")
	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, TRANSPORT_ERROR_CODE, apiErr.Code)
}

func TestCreatePost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/users/u1/posts", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello", body["title"])
		assert.Equal(t, "<p>Hi</p>", body["content"])
		assert.Equal(t, "html", body["contentFormat"])
		assert.Equal(t, "draft", body["publishStatus"])
		assert.Equal(t, "cc-40-by", body["license"])
		assert.Equal(t, "https://blog.example/hello", body["canonicalUrl"])
		assert.Equal(t, []interface{}{"go", "medium"}, body["tags"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"p1","title":"Hello","authorId":"u1","url":"https://medium.com/p1","publishStatus":"draft"}}`)
	}))
	defer srv.Close()

	created, err := NewClient(srv.URL).CreatePost("tok", "u1", PostDraft{
		Title:         "Hello",
		Content:       "<p>Hi</p>",
		Tags:          []string{"go", "medium"},
		CanonicalURL:  "https://blog.example/hello",
		License:       "cc-40-by",
		PublishStatus: "draft",
	})
	require.NoError(t, err)
	assert.Equal(t, CreatedPost{ID: "p1", URL: "https://medium.com/p1"}, created)
}

func TestCreatePostApiDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"errors":[{"message":"API access is not available.","code":6027}]}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreatePost("tok", "u1", PostDraft{Title: "t", PublishStatus: "public"})
	assert.Equal(t, KIND_API_DISABLED, Classify(err))
}

func TestCreatePostRejectsUnknownEnumsLocally(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls++ }))
	defer srv.Close()
	client := NewClient(srv.URL)

	_, err := client.CreatePost("tok", "u1", PostDraft{PublishStatus: "none"})
	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, INVALID_REQUEST_CODE, apiErr.Code)

	_, err = client.CreatePost("tok", "u1", PostDraft{PublishStatus: "public", License: "mit"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, INVALID_REQUEST_CODE, apiErr.Code)
	assert.Equal(t, 0, calls)
}

func TestNewClientDefaultsHost(t *testing.T) {
	assert.Equal(t, DEFAULT_HOST, NewClient("").host)
}

func TestErrorReplyWithoutErrorsArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"message":"upstream down"}`)
	}))
	defer srv.Close()
	client := NewClient(srv.URL)

	var apiErr *ApiError
	_, err := client.FetchProfile("tok")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, TRANSPORT_ERROR_CODE, apiErr.Code)
	assert.Equal(t, KIND_SOMETHING_WRONG, Classify(err))

	_, err = client.CreatePost("tok", "u1", PostDraft{Title: "t", PublishStatus: "public"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, TRANSPORT_ERROR_CODE, apiErr.Code)
}

func TestSuccessReplyWithoutData(t *testing.T) {
	for name, body := range map[string]string{
		"errors": `{"errors":[{"message":"Token was invalid.","code":6003}]}`,
		"empty":  `{}`,
		"noId":   `{"data":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if r.Method == http.MethodPost {
					w.WriteHeader(http.StatusCreated)
				}
				fmt.Fprint(w, body)
			}))
			defer srv.Close()
			client := NewClient(srv.URL)

			var apiErr *ApiError
			profile, err := client.FetchProfile("tok")
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, TRANSPORT_ERROR_CODE, apiErr.Code)
			assert.Equal(t, Profile{}, profile)

			created, err := client.CreatePost("tok", "u1", PostDraft{Title: "t", PublishStatus: "public"})
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, TRANSPORT_ERROR_CODE, apiErr.Code)
			assert.Equal(t, CreatedPost{}, created)
		})
	}
}
