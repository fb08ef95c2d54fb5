package contact

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func validForm() Form {
	return Form{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Mice",
		Message: "I have a photo of a harvest mouse.",
	}
}

func TestFormValidate(t *testing.T) {
	require.NoError(t, validForm().Validate())

	f := validForm()
	f.Email = "   "
	f.Message = ""
	err := f.Validate()

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldErrors{"email", "message"}, fe)
	assert.True(t, fe.Has("email"))
	assert.False(t, fe.Has("name"))
	assert.Contains(t, err.Error(), "email, message")
}

func TestSubmissionLifecycle(t *testing.T) {
	s := NewSubmission(20*time.Millisecond, 100*time.Millisecond)
	defer s.Close()

	require.NoError(t, s.Submit(validForm()))
	snap := s.Snapshot()
	assert.Equal(t, Submitting, snap.State)
	assert.Equal(t, validForm(), snap.Form)

	assert.ErrorIs(t, s.Submit(validForm()), ErrBusy)

	assert.Eventually(t, func() bool {
		return s.Snapshot().State == Submitted
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return s.Snapshot().State == Idle
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, Form{}, s.Snapshot().Form)

	// idle again, so a new message can go out
	require.NoError(t, s.Submit(validForm()))
}

func TestSubmissionMissingFieldStaysIdle(t *testing.T) {
	s := NewSubmission(time.Millisecond, time.Millisecond)
	defer s.Close()

	for _, blank := range []string{"name", "email", "subject", "message"} {
		f := validForm()
		switch blank {
		case "name":
			f.Name = ""
		case "email":
			f.Email = ""
		case "subject":
			f.Subject = ""
		case "message":
			f.Message = ""
		}
		err := s.Submit(f)
		var fe FieldErrors
		require.True(t, errors.As(err, &fe), blank)
		assert.Equal(t, FieldErrors{blank}, fe)
		assert.Equal(t, Idle, s.Snapshot().State)
	}
}

func TestSubmissionCloseStopsTimers(t *testing.T) {
	s := NewSubmission(10*time.Millisecond, 10*time.Millisecond)
	require.NoError(t, s.Submit(validForm()))
	s.Close()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, Submitting, s.Snapshot().State)
	assert.ErrorIs(t, s.Submit(validForm()), ErrClosed)
}

func TestDefaultDelays(t *testing.T) {
	s := NewSubmission(0, -1)
	assert.Equal(t, DefaultSubmitDelay, s.submitDelay)
	assert.Equal(t, DefaultResetDelay, s.resetDelay)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "submitted", Submitted.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestStateText(t *testing.T) {
	for _, st := range []State{Idle, Submitting, Submitted} {
		text, err := st.MarshalText()
		require.NoError(t, err)
		var got State
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, st, got)
	}
	var s State
	assert.Error(t, s.UnmarshalText([]byte("sending")))
}
