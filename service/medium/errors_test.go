package medium

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[int]ErrorKind{
		6000:  KIND_INVALID_TOKEN,
		6001:  KIND_INVALID_TOKEN,
		6003:  KIND_INVALID_TOKEN,
		6027:  KIND_API_DISABLED,
		6002:  KIND_SOMETHING_WRONG,
		6026:  KIND_SOMETHING_WRONG,
		0:     KIND_SOMETHING_WRONG,
		-1:    KIND_SOMETHING_WRONG,
		-2:    KIND_SOMETHING_WRONG,
		-6000: KIND_SOMETHING_WRONG,
		2002:  KIND_SOMETHING_WRONG,
	}
	for code, want := range cases {
		assert.Equal(t, want, Classify(&ApiError{Message: "m", Code: code}), "code %d", code)
	}
}

func TestClassifyWrappedAndForeignErrors(t *testing.T) {
	wrapped := fmt.Errorf("connect: %w", &ApiError{Message: "revoked", Code: 6001})
	assert.Equal(t, KIND_INVALID_TOKEN, Classify(wrapped))
	assert.Equal(t, KIND_SOMETHING_WRONG, Classify(errors.New("dial tcp: refused")))
}

func TestDetails(t *testing.T) {
	msg, code := Details(&ApiError{Message: "Post title too long", Code: 2005})
	assert.Equal(t, "Post title too long", msg)
	assert.Equal(t, 2005, code)

	msg, code = Details(errors.New("eof"))
	assert.Equal(t, "eof", msg)
	assert.Equal(t, TRANSPORT_ERROR_CODE, code)
}
