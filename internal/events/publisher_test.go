package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "academy/pkg/domain"
	"academy/pkg/requestcontext"
)

func TestInMemoryPublisher(t *testing.T) {
	t.Run("records emitted events", func(t *testing.T) {
		pub := NewInMemory()
		institutionID := id.InstitutionID(uuid.New())

		err := pub.Emit(context.Background(), Event{
			Action:        ActionInstitutionEnrolled,
			InstitutionID: institutionID,
			Amount:        100,
		})
		require.NoError(t, err)

		emitted := pub.Events()
		require.Len(t, emitted, 1)
		assert.Equal(t, ActionInstitutionEnrolled, emitted[0].Action)
		assert.Equal(t, institutionID, emitted[0].InstitutionID)
		assert.Equal(t, uint64(100), emitted[0].Amount)
		assert.False(t, emitted[0].Timestamp.IsZero())
	})

	t.Run("stamps request metadata from the context", func(t *testing.T) {
		pub := NewInMemory()
		ctx := requestcontext.WithRequestID(context.Background(), "req-123")
		ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.1", "Firefox on Linux")

		require.NoError(t, pub.Emit(ctx, Event{Action: ActionCourseEnrolled}))

		emitted := pub.Events()
		require.Len(t, emitted, 1)
		assert.Equal(t, "req-123", emitted[0].RequestID)
		assert.Equal(t, "10.0.0.1", emitted[0].ClientIP)
		assert.Equal(t, "Firefox on Linux", emitted[0].UserAgent)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		pub := NewInMemory()
		require.NoError(t, pub.Emit(context.Background(), Event{Action: ActionCourseCreated}))

		snapshot := pub.Events()
		snapshot[0].Action = Action("mutated")

		assert.Equal(t, ActionCourseCreated, pub.Events()[0].Action)
	})
}
