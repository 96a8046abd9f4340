package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

var (
	errBoom     = errors.New("boom")
	errExpected = errors.New("expected")
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := New[int]("test", nil)

	for i := 0; i < defaultFailureThreshold; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, errBoom })
		assert.ErrorIs(t, err, errBoom)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())
	_, err := cb.Execute(func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreaker_IgnoresSuccessfulErrors(t *testing.T) {
	cb := New[int]("test", func(err error) bool {
		return err == nil || errors.Is(err, errExpected)
	})

	for i := 0; i < defaultFailureThreshold*2; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, errExpected })
		assert.ErrorIs(t, err, errExpected)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
