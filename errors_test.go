package charsprite

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusBadRequest, StatusCode(ErrBodyNotSpecified))
	assert.Equal(t, http.StatusBadRequest, StatusCode(fmt.Errorf("%w: %q", ErrWingNotFound, "bat")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(ErrMergeFailed))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("disk on fire")))
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, "head type not specified", Message(ErrHeadNotSpecified))
	assert.Equal(t, `hat type not found: "crown"`, Message(fmt.Errorf("%w: %q", ErrHatNotFound, "crown")))
	assert.Equal(t, "failed to generate image", Message(fmt.Errorf("%w: %w", ErrMergeFailed, errors.New("boom"))))
	assert.Equal(t, "failed to generate image", Message(ErrInvalidEncodingFormat))
}

func TestIsRequestError(t *testing.T) {
	for _, err := range []error{
		ErrBodyNotSpecified, ErrHeadNotSpecified,
		ErrBodyNotFound, ErrHeadNotFound, ErrHatNotFound, ErrWingNotFound,
		ErrInvalidSex, ErrInvalidFormat, ErrInvalidScale,
	} {
		assert.True(t, IsRequestError(err), err.Error())
	}
	assert.False(t, IsRequestError(ErrMergeFailed))
	assert.False(t, IsRequestError(ErrInvalidEncodingFormat))
}
