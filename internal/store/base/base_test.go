package base

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/stretchr/testify/assert"
)

func TestStatus_Lifecycle(t *testing.T) {
	var s Status
	rec := &notify.Recorder{}

	s.Begin()
	assert.True(t, s.Loading())

	err := s.Fail(context.Background(), rec, errors.New("boom"), "Failed to load")
	s.End()

	assert.EqualError(t, err, "boom")
	assert.False(t, s.Loading())
	assert.Equal(t, "boom", s.Error())
	assert.Equal(t, notify.Error("boom"), rec.Last())

	s.Begin()
	assert.Empty(t, s.Error())

	sentinel := errors.New("summary unavailable")
	err = s.FailWith(context.Background(), rec, sentinel, "Failed to fetch dashboard data")
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "Failed to fetch dashboard data", s.Error())
	assert.Equal(t, "Failed to fetch dashboard data", rec.Last().Description)

	s.Reset()
	assert.Empty(t, s.Error())
}

func TestLoader(t *testing.T) {
	var nilLoader *Loader
	nilLoader.Track()()
	assert.False(t, nilLoader.Active())

	l := &Loader{}
	done1 := l.Track()
	done2 := l.Track()
	assert.True(t, l.Active())

	done1()
	done1()
	assert.True(t, l.Active())
	done2()
	assert.False(t, l.Active())
}
