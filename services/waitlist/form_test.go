package waitlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"turn2law_web/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fillForm(t *testing.T, f *Form, s models.WaitlistSubmission) {
	t.Helper()
	for _, field := range models.WaitlistFields {
		_, err := f.Set(field, s.Get(field))
		require.NoError(t, err)
	}
}

func TestFormSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := NewForm(NewMockSubmitter(ctrl))

	t.Run("Live validation per field", func(t *testing.T) {
		msgs, err := f.Set(models.FieldFullName, "J")
		assert.NoError(t, err)
		assert.Equal(t, []string{MsgFullNameMin}, msgs)

		msgs, err = f.Set(models.FieldFullName, "Jane")
		assert.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("Only touched fields report errors", func(t *testing.T) {
		snap := f.Snapshot()
		assert.Empty(t, snap.Errors)

		f.Set(models.FieldEmail, "nope")
		snap = f.Snapshot()
		assert.Equal(t, []string{MsgEmailInvalid}, snap.Errors[models.FieldEmail])
		assert.NotContains(t, snap.Errors, models.FieldRole)
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, err := f.Set("phone", "123")
		assert.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestFormSubmit(t *testing.T) {
	t.Run("Local validation blocks the network call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

		f := NewForm(submitter)
		s := validSubmission()
		s.FullName = "J"
		s.Email = "not-an-email"
		fillForm(t, f, s)

		err := f.Submit(context.Background())
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.ElementsMatch(t, []string{models.FieldFullName, models.FieldEmail}, verr.Fields.Fields())

		snap := f.Snapshot()
		assert.Equal(t, StateEditing, snap.State)
		assert.Equal(t, "J", snap.Values.FullName)
		assert.Nil(t, snap.Failure)
	})

	t.Run("Submitting an untouched form marks every field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := NewForm(NewMockSubmitter(ctrl))

		err := f.Submit(context.Background())
		assert.Error(t, err)
		assert.ElementsMatch(t,
			[]string{models.FieldFullName, models.FieldEmail, models.FieldRole},
			f.Snapshot().Errors.Fields())
	})

	t.Run("Success clears the form and closes the session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), validSubmission()).Return(nil).Times(1)

		f := NewForm(submitter)
		fillForm(t, f, validSubmission())

		assert.NoError(t, f.Submit(context.Background()))

		snap := f.Snapshot()
		assert.Equal(t, StateSubmitted, snap.State)
		assert.Equal(t, models.WaitlistSubmission{}, snap.Values)
		assert.False(t, snap.CanSubmit())

		_, err := f.Set(models.FieldEmail, "other@example.com")
		assert.ErrorIs(t, err, ErrFormClosed)
		assert.ErrorIs(t, f.Submit(context.Background()), ErrFormClosed)

		f.Reset()
		assert.Equal(t, StateEditing, f.State())
		_, err = f.Set(models.FieldEmail, "other@example.com")
		assert.NoError(t, err)
	})

	t.Run("Remote rejection keeps values and annotates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&SubmitError{
			Kind:       KindRemoteValidation,
			StatusCode: http.StatusBadRequest,
			Fields:     FieldErrors{"email": {"already registered"}},
		})

		f := NewForm(submitter)
		fillForm(t, f, validSubmission())

		err := f.Submit(context.Background())
		assert.Error(t, err)

		snap := f.Snapshot()
		assert.Equal(t, StateEditing, snap.State)
		assert.Equal(t, validSubmission(), snap.Values)
		assert.Contains(t, snap.FailureMessage(), "already registered")
		assert.True(t, snap.CanSubmit())
	})

	t.Run("Unclassified errors become unexpected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		f := NewForm(submitter)
		fillForm(t, f, validSubmission())

		f.Submit(context.Background())
		snap := f.Snapshot()
		require.NotNil(t, snap.Failure)
		assert.Equal(t, KindUnexpected, snap.Failure.Kind)
		assert.Equal(t, MsgUnexpectedError, snap.FailureMessage())
	})

	t.Run("Cancellation discards the result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(context.Canceled)

		f := NewForm(submitter)
		fillForm(t, f, validSubmission())

		err := f.Submit(context.Background())
		assert.ErrorIs(t, err, context.Canceled)

		snap := f.Snapshot()
		assert.Equal(t, StateEditing, snap.State)
		assert.Nil(t, snap.Failure)
		assert.Equal(t, validSubmission(), snap.Values)
	})

	t.Run("A new attempt clears the previous annotation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		gomock.InOrder(
			submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&SubmitError{Kind: KindNetwork}),
			submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil),
		)

		f := NewForm(submitter)
		fillForm(t, f, validSubmission())

		f.Submit(context.Background())
		assert.Equal(t, MsgNetworkError, f.Snapshot().FailureMessage())

		assert.NoError(t, f.Submit(context.Background()))
		assert.Nil(t, f.Snapshot().Failure)
	})
}

func TestFormSubmitInFlight(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	f := NewForm(client)
	fillForm(t, f, validSubmission())

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = f.Submit(context.Background())
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the server")
	}

	assert.Equal(t, StateSubmitting, f.State())
	assert.False(t, f.Snapshot().CanSubmit())

	// Second and third attempts while the first is outstanding are no-ops
	assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmissionInFlight)
	assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmissionInFlight)

	// Edits are still accepted while in flight
	_, err = f.Set(models.FieldInterests, "tenancy")
	assert.NoError(t, err)

	close(release)
	wg.Wait()

	assert.NoError(t, firstErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, StateSubmitted, f.State())
}

func TestFormFailureModesAgainstBackend(t *testing.T) {
	t.Run("Backend answers 400 with field errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"email": ["already registered"]}`))
		}))
		defer server.Close()

		client, err := NewClient(server.URL)
		require.NoError(t, err)

		f := NewForm(client)
		fillForm(t, f, validSubmission())
		f.Submit(context.Background())

		snap := f.Snapshot()
		assert.Equal(t, StateEditing, snap.State)
		assert.Contains(t, snap.FailureMessage(), "already registered")
		assert.Equal(t, validSubmission(), snap.Values)
	})

	t.Run("Backend unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client, err := NewClient(url)
		require.NoError(t, err)

		f := NewForm(client)
		fillForm(t, f, validSubmission())
		f.Submit(context.Background())

		snap := f.Snapshot()
		assert.Equal(t, StateEditing, snap.State)
		assert.Equal(t, MsgNetworkError, snap.FailureMessage())
		assert.Equal(t, validSubmission(), snap.Values)
	})

	t.Run("Backend too slow", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		client, err := NewClient(server.URL, WithTimeout(50*time.Millisecond))
		require.NoError(t, err)

		f := NewForm(client)
		fillForm(t, f, validSubmission())
		f.Submit(context.Background())

		snap := f.Snapshot()
		assert.Equal(t, StateEditing, snap.State)
		assert.Equal(t, MsgTimeoutError, snap.FailureMessage())
	})
}

// submitterFunc adapts a function to Submitter
type submitterFunc func(ctx context.Context, s models.WaitlistSubmission) error

func (fn submitterFunc) Submit(ctx context.Context, s models.WaitlistSubmission) error {
	return fn(ctx, s)
}

func TestFormSubmitValues(t *testing.T) {
	t.Run("Stores and sends the posted values", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), validSubmission()).Return(nil).Times(1)

		f := NewForm(submitter)
		assert.NoError(t, f.SubmitValues(context.Background(), validSubmission()))
		assert.Equal(t, StateSubmitted, f.State())
	})

	t.Run("Invalid values are kept for correction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

		f := NewForm(submitter)
		s := validSubmission()
		s.Email = "nope"

		var verr *ValidationError
		require.True(t, errors.As(f.SubmitValues(context.Background(), s), &verr))
		assert.Equal(t, s, f.Snapshot().Values)
	})

	t.Run("Duplicate post while in flight keeps the values that were sent", func(t *testing.T) {
		var calls int32
		started := make(chan struct{})
		release := make(chan struct{})
		f := NewForm(submitterFunc(func(ctx context.Context, s models.WaitlistSubmission) error {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return &SubmitError{
				Kind:       KindRemoteValidation,
				StatusCode: http.StatusBadRequest,
				Fields:     FieldErrors{"email": {"already registered"}},
			}
		}))

		done := make(chan error, 1)
		go func() {
			done <- f.SubmitValues(context.Background(), validSubmission())
		}()

		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("first submission never reached the submitter")
		}

		other := validSubmission()
		other.FullName = "Mallory"
		other.Email = "mallory@example.com"
		assert.ErrorIs(t, f.SubmitValues(context.Background(), other), ErrSubmissionInFlight)
		assert.ErrorIs(t, f.SetAll(other), ErrSubmissionInFlight)

		close(release)
		assert.Error(t, <-done)

		snap := f.Snapshot()
		assert.Equal(t, StateEditing, snap.State)
		assert.Equal(t, validSubmission(), snap.Values)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Closed form ignores the post", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		submitter := NewMockSubmitter(ctrl)
		submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		f := NewForm(submitter)
		require.NoError(t, f.SubmitValues(context.Background(), validSubmission()))
		assert.ErrorIs(t, f.SubmitValues(context.Background(), validSubmission()), ErrFormClosed)
		assert.Equal(t, models.WaitlistSubmission{}, f.Snapshot().Values)
	})
}

func TestFormSubmitterPanic(t *testing.T) {
	f := NewForm(submitterFunc(func(ctx context.Context, s models.WaitlistSubmission) error {
		panic("signup client bug")
	}))
	fillForm(t, f, validSubmission())

	assert.Panics(t, func() {
		f.Submit(context.Background())
	})

	snap := f.Snapshot()
	assert.Equal(t, StateEditing, snap.State)
	assert.True(t, snap.CanSubmit())
	assert.Equal(t, validSubmission(), snap.Values)
}
