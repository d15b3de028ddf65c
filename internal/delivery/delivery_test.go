package delivery_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/workflow"
)

func TestDelivery_Submit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name     string
		delivery delivery.Delivery
		wantErr  error
	}

	tests := []testCase{
		{
			name: "EmptyDraft",
			delivery: delivery.Delivery{
				Status: delivery.StatusDraft,
			},
			wantErr: workflow.ErrValidation,
		},
		{
			name: "WhitespaceNotes",
			delivery: delivery.Delivery{
				Status: delivery.StatusDraft,
				Notes:  "   ",
				Links:  []delivery.ExternalLink{{ID: uuid.New(), URL: "https://figma.com/f/1", Type: delivery.LinkFigma}},
			},
			wantErr: workflow.ErrValidation,
		},
		{
			name: "NotesButNoAttachments",
			delivery: delivery.Delivery{
				Status: delivery.StatusDraft,
				Notes:  "done",
			},
			wantErr: workflow.ErrValidation,
		},
		{
			name: "NotesAndOneLink",
			delivery: delivery.Delivery{
				Status: delivery.StatusDraft,
				Notes:  "done",
				Links:  []delivery.ExternalLink{{ID: uuid.New(), URL: "https://github.com/acme/site", Type: delivery.LinkGitHub}},
			},
		},
		{
			name: "NotesAndOneFile",
			delivery: delivery.Delivery{
				Status: delivery.StatusDraft,
				Notes:  "final cut attached",
				Files:  []delivery.File{{ID: uuid.New(), Name: "cut.mp4", Version: 1}},
			},
		},
		{
			name: "AlreadySubmitted",
			delivery: delivery.Delivery{
				Status: delivery.StatusSubmitted,
				Notes:  "done",
				Files:  []delivery.File{{ID: uuid.New(), Name: "cut.mp4", Version: 1}},
			},
			wantErr: workflow.ErrState,
		},
		{
			name: "AlreadyApproved",
			delivery: delivery.Delivery{
				Status: delivery.StatusApproved,
				Notes:  "done",
				Files:  []delivery.File{{ID: uuid.New(), Name: "cut.mp4", Version: 1}},
			},
			wantErr: workflow.ErrState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.delivery

			err := d.Submit(now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, delivery.StatusSubmitted, d.Status)
			require.NotNil(t, d.SubmittedAt)
			assert.Equal(t, now, *d.SubmittedAt)
		})
	}
}

func TestDelivery_RevisionLoop(t *testing.T) {
	firstSubmit := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	resubmit := firstSubmit.Add(48 * time.Hour)

	d := delivery.Delivery{
		Status: delivery.StatusDraft,
		Notes:  "first pass",
		Links:  []delivery.ExternalLink{{ID: uuid.New(), URL: "https://drive.google.com/x", Type: delivery.LinkGoogleDrive}},
	}

	require.NoError(t, d.Submit(firstSubmit))

	require.NoError(t, d.RequestRevision("fix the header spacing", firstSubmit.Add(time.Hour)))
	assert.Equal(t, delivery.StatusRevisionRequested, d.Status)
	assert.Equal(t, "fix the header spacing", d.RevisionNotes)

	// Resubmission keeps the revision notes as a historical record and
	// refreshes the submission timestamp.
	require.NoError(t, d.Submit(resubmit))
	assert.Equal(t, delivery.StatusSubmitted, d.Status)
	assert.Equal(t, "fix the header spacing", d.RevisionNotes)
	assert.Equal(t, resubmit, *d.SubmittedAt)
}

func TestDelivery_RequestRevision_InvalidStates(t *testing.T) {
	for _, status := range []delivery.Status{
		delivery.StatusDraft,
		delivery.StatusRevisionRequested,
		delivery.StatusApproved,
	} {
		t.Run(string(status), func(t *testing.T) {
			d := delivery.Delivery{Status: status}
			assert.ErrorIs(t, d.RequestRevision("fix X", time.Now()), workflow.ErrState)
		})
	}
}

func TestDelivery_RequestRevision_EmptyNotes(t *testing.T) {
	d := delivery.Delivery{Status: delivery.StatusSubmitted}
	assert.ErrorIs(t, d.RequestRevision("  ", time.Now()), workflow.ErrValidation)
}

func TestDelivery_Approve(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	d := delivery.Delivery{Status: delivery.StatusSubmitted}
	require.NoError(t, d.Approve(now))
	assert.Equal(t, delivery.StatusApproved, d.Status)
	assert.Equal(t, now, *d.ApprovedAt)

	draft := delivery.Delivery{Status: delivery.StatusDraft}
	assert.ErrorIs(t, draft.Approve(now), workflow.ErrState)
}

func TestDelivery_FileVersioning(t *testing.T) {
	d := delivery.Delivery{Status: delivery.StatusDraft}

	first, err := d.AddFile(delivery.File{ID: uuid.New(), Name: "spec.pdf"})
	require.NoError(t, err)

	second, err := d.AddFile(delivery.File{ID: uuid.New(), Name: "spec.pdf"})
	require.NoError(t, err)

	other, err := d.AddFile(delivery.File{ID: uuid.New(), Name: "logo.svg"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, 1, other.Version)

	// Both versions retained, no overwrite.
	assert.Len(t, d.Files, 3)
}

func TestDelivery_AddFile_Validation(t *testing.T) {
	d := delivery.Delivery{Status: delivery.StatusDraft}

	_, err := d.AddFile(delivery.File{Name: "  "})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = d.AddFile(delivery.File{Name: "a.txt", Size: -1})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	submitted := delivery.Delivery{Status: delivery.StatusSubmitted}
	_, err = submitted.AddFile(delivery.File{Name: "a.txt"})
	assert.ErrorIs(t, err, workflow.ErrState)
}

func TestDelivery_RemoveFile(t *testing.T) {
	fileID := uuid.New()

	t.Run("Draft", func(t *testing.T) {
		d := delivery.Delivery{
			Status: delivery.StatusDraft,
			Files:  []delivery.File{{ID: fileID, Name: "a.txt", Version: 1}},
		}

		require.NoError(t, d.RemoveFile(fileID))
		assert.Empty(t, d.Files)
	})

	t.Run("UnknownID", func(t *testing.T) {
		d := delivery.Delivery{Status: delivery.StatusRevisionRequested}
		assert.ErrorIs(t, d.RemoveFile(uuid.New()), workflow.ErrNotFound)
	})

	t.Run("ReadOnly", func(t *testing.T) {
		for _, status := range []delivery.Status{delivery.StatusSubmitted, delivery.StatusApproved} {
			d := delivery.Delivery{
				Status: status,
				Files:  []delivery.File{{ID: fileID, Name: "a.txt", Version: 1}},
			}

			assert.ErrorIs(t, d.RemoveFile(fileID), workflow.ErrState)
			assert.Len(t, d.Files, 1)
		}
	})
}

func TestValidStatus(t *testing.T) {
	assert.True(t, delivery.ValidStatus(delivery.StatusDraft))
	assert.True(t, delivery.ValidStatus(delivery.StatusRevisionRequested))
	assert.False(t, delivery.ValidStatus(delivery.Status("shipped")))
}

func TestValidLinkType(t *testing.T) {
	assert.True(t, delivery.ValidLinkType(delivery.LinkDropbox))
	assert.False(t, delivery.ValidLinkType(delivery.LinkType("ftp")))
}
