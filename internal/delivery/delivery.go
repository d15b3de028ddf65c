// Package delivery implements the delivery packager: files, external links
// and notes assembled into a submission that moves a milestone toward
// payment release.
package delivery

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/workflow"
)

// Status represents the lifecycle state of a delivery.
//
// Allowed transitions: draft -> submitted -> {approved, revision_requested},
// revision_requested -> submitted. A delivery is read-only while submitted
// or approved.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusSubmitted         Status = "submitted"
	StatusRevisionRequested Status = "revision_requested"
	StatusApproved          Status = "approved"
)

// LinkType identifies the service an external link points at.
type LinkType string

const (
	LinkGoogleDrive LinkType = "google_drive"
	LinkDropbox     LinkType = "dropbox"
	LinkFigma       LinkType = "figma"
	LinkGitHub      LinkType = "github"
	LinkOther       LinkType = "other"
)

// Delivery represents the packaged submission for one milestone.
type Delivery struct {
	ID            uuid.UUID
	MilestoneID   uuid.UUID
	Status        Status
	Files         []File
	Links         []ExternalLink
	Notes         string
	RevisionNotes string
	CreatedAt     time.Time
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
}

// File is the metadata record for one uploaded file. The engine never
// touches raw bytes; the storage collaborator produces these once an
// upload completes.
type File struct {
	ID         uuid.UUID
	Name       string
	Size       int64 // Bytes
	MimeType   string
	URL        string
	Version    int
	UploadedAt time.Time
}

// ExternalLink points at work hosted elsewhere (drive, figma, repo, ...).
type ExternalLink struct {
	ID    uuid.UUID
	Title string
	URL   string
	Type  LinkType
}

// IsReadOnly reports whether file/note mutation is blocked. Submitted and
// approved deliveries stay frozen until a revision is explicitly requested.
func (d *Delivery) IsReadOnly() bool {
	return d.Status == StatusSubmitted || d.Status == StatusApproved
}

// AddFile appends a file, assigning the next version for its name. Earlier
// versions are retained, never overwritten.
func (d *Delivery) AddFile(f File) (File, error) {
	if d.IsReadOnly() {
		return File{}, workflow.State("delivery is %s: files cannot be added", d.Status)
	}

	if strings.TrimSpace(f.Name) == "" {
		return File{}, workflow.Validation("file name is required")
	}

	if f.Size < 0 {
		return File{}, workflow.Validation("file size cannot be negative")
	}

	f.Version = d.nextVersion(f.Name)
	d.Files = append(d.Files, f)

	return f, nil
}

func (d *Delivery) nextVersion(name string) int {
	count := 0

	for _, f := range d.Files {
		if f.Name == name {
			count++
		}
	}

	return count + 1
}

// RemoveFile deletes a file record. Only permitted while the delivery is
// mutable (draft or revision_requested).
func (d *Delivery) RemoveFile(fileID uuid.UUID) error {
	if d.IsReadOnly() {
		return workflow.State("delivery is %s: files cannot be removed", d.Status)
	}

	for i, f := range d.Files {
		if f.ID == fileID {
			d.Files = append(d.Files[:i], d.Files[i+1:]...)
			return nil
		}
	}

	return workflow.NotFound("file %s not found in delivery", fileID)
}

// Submit validates the submission preconditions and moves the delivery to
// submitted. Resubmission from revision_requested keeps RevisionNotes as a
// historical record and refreshes SubmittedAt.
func (d *Delivery) Submit(now time.Time) error {
	if d.Status != StatusDraft && d.Status != StatusRevisionRequested {
		return workflow.State("delivery is %s: only draft or revision_requested can be submitted", d.Status)
	}

	if strings.TrimSpace(d.Notes) == "" {
		return workflow.Validation("delivery notes are required before submitting")
	}

	if len(d.Files) == 0 && len(d.Links) == 0 {
		return workflow.Validation("delivery needs at least one file or external link")
	}

	d.Status = StatusSubmitted
	d.SubmittedAt = &now

	return nil
}

// RequestRevision moves a submitted delivery back into the revision loop,
// recording the client's feedback.
func (d *Delivery) RequestRevision(notes string, _ time.Time) error {
	if d.Status != StatusSubmitted {
		return workflow.State("delivery is %s: revisions can only be requested on a submitted delivery", d.Status)
	}

	if strings.TrimSpace(notes) == "" {
		return workflow.Validation("revision notes are required")
	}

	d.Status = StatusRevisionRequested
	d.RevisionNotes = notes

	return nil
}

// Approve accepts a submitted delivery. This is the trigger the milestone
// lifecycle watches for completion eligibility.
func (d *Delivery) Approve(now time.Time) error {
	if d.Status != StatusSubmitted {
		return workflow.State("delivery is %s: only a submitted delivery can be approved", d.Status)
	}

	d.Status = StatusApproved
	d.ApprovedAt = &now

	return nil
}

// ValidStatus reports whether s is a known delivery status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusRevisionRequested, StatusApproved:
		return true
	}

	return false
}

// ValidLinkType reports whether t is a known link type.
func ValidLinkType(t LinkType) bool {
	switch t {
	case LinkGoogleDrive, LinkDropbox, LinkFigma, LinkGitHub, LinkOther:
		return true
	}

	return false
}
