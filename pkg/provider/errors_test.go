package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Resource: "instance", ID: "i-123", Field: "LaunchTime"}
	assert.Equal(t, "instance i-123: missing field LaunchTime", err.Error())

	noID := &MissingFieldError{Resource: "instance", Field: "InstanceId"}
	assert.Equal(t, "instance: missing field InstanceId", noID.Error())

	wrapped := fmt.Errorf("describe group: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMissingField))

	var mfe *MissingFieldError
	assert.True(t, errors.As(wrapped, &mfe))
	assert.Equal(t, "LaunchTime", mfe.Field)
	assert.False(t, errors.Is(wrapped, ErrGroupNotFound))
}
