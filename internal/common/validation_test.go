package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestValidatorFeedbackRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		rating  int
		wantErr bool
	}{
		{name: "valid", text: "clear and accurate translation", rating: 5},
		{name: "short text", text: "  too short ", rating: 3, wantErr: true},
		{name: "rating low", text: "long enough feedback", rating: 0, wantErr: true},
		{name: "rating high", text: "long enough feedback", rating: 6, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := NewValidator().
				Field("feedback_text", tt.text, Required, MinLength(10)).
				Field("rating", tt.rating, IntRange(1, 5))
			if tt.wantErr {
				require.True(t, v.HasErrors())
				require.True(t, IsValidation(v.Error()))
				return
			}
			require.NoError(t, v.Error())
		})
	}
}

func TestValidatorUUIDAndStatus(t *testing.T) {
	t.Parallel()

	v := NewValidator().Field("document_id", uuid.NewString(), Required, UUID)
	require.NoError(t, ValidateAndReturnError(v))

	v = NewValidator().Field("document_id", "nope", UUID)
	err := ValidateAndReturnError(v)
	require.Error(t, err)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestToStatus(t *testing.T) {
	t.Parallel()

	require.Nil(t, ToStatus(nil))
	require.Equal(t, codes.NotFound, status.Code(ToStatus(fmt.Errorf("document: %w", ErrNotFound))))
	require.Equal(t, codes.Unavailable, status.Code(ToStatus(NewAppError("TRANSLATE", "failed", ErrUpstream))))
	require.Equal(t, codes.FailedPrecondition, status.Code(ToStatus(ErrNoTextDetected)))
	require.Equal(t, codes.Internal, status.Code(ToStatus(errors.New("disk full"))))

	require.Equal(t, codes.InvalidArgument, status.Code(ToStatus(fmt.Errorf("notes.txt: %w", ErrUnsupported))))
	require.Equal(t, codes.DeadlineExceeded, status.Code(ToStatus(fmt.Errorf("ocr: %w", context.DeadlineExceeded))))

	already := NotFoundError("gone")
	require.Equal(t, already, ToStatus(already))
}
