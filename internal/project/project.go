// Package project owns the project aggregate: the root entity a client and
// freelancer collaborate on, loaded whole with all nested milestones.
package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/milestone"
)

// Project represents one client engagement. It owns its milestones
// exclusively; they are never shared across projects.
type Project struct {
	ID          uuid.UUID
	Title       string
	ClientName  string
	Currency    string // ISO 4217 code
	TotalAmount int64  // Amount in cents
	Milestones  []*milestone.Milestone
	CreatedAt   time.Time
}
