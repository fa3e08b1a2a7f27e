package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

// Edge is a labeled, optionally directed connection between two nodes.
// Source and Target are lookups, not foreign keys; the mutation service checks
// them when the edge is created.
type Edge struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Source     uuid.UUID         `gorm:"type:uuid;not null;index:idx_edges_source_target,priority:1" json:"source" validate:"required"`
	Target     uuid.UUID         `gorm:"type:uuid;not null;index:idx_edges_target;index:idx_edges_source_target,priority:2" json:"target" validate:"required"`
	Label      string            `gorm:"type:text;not null;default:''" json:"label"`
	Properties datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"properties"`
	Directed   bool              `gorm:"not null" json:"directed"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// BeforeCreate assigns an id when the caller did not.
func (e *Edge) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// BeforeSave rejects records that break the edge invariants.
func (e *Edge) BeforeSave(tx *gorm.DB) error {
	return e.Validate()
}

// EdgeInput is the body accepted when creating an edge. Directed defaults to
// true when omitted.
type EdgeInput struct {
	Source     string         `json:"source" validate:"required"`
	Target     string         `json:"target" validate:"required"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties"`
	Directed   *bool          `json:"directed"`
}

var edgeInputMessages = map[string]string{
	"Source.required": "Source and target nodes are required",
	"Target.required": "Source and target nodes are required",
}

// NewEdge builds a validated edge from input. It does not check that the
// endpoints exist.
func NewEdge(in EdgeInput) (*Edge, error) {
	if err := validate.Struct(in); err != nil {
		return nil, firstFailure(err, edgeInputMessages, "invalid edge")
	}
	source, err := ParseID(in.Source)
	if err != nil {
		return nil, appErr.Invalid("Invalid node IDs")
	}
	target, err := ParseID(in.Target)
	if err != nil {
		return nil, appErr.Invalid("Invalid node IDs")
	}

	e := &Edge{
		Source:     source,
		Target:     target,
		Label:      strings.TrimSpace(in.Label),
		Properties: datatypes.JSONMap(in.Properties),
		Directed:   true,
	}
	if in.Directed != nil {
		e.Directed = *in.Directed
	}
	if e.Properties == nil {
		e.Properties = datatypes.JSONMap{}
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the edge invariants.
func (e *Edge) Validate() error {
	if err := validate.Struct(e); err != nil {
		return firstFailure(err, edgeInputMessages, "invalid edge")
	}
	return nil
}

// Touches reports whether the edge has nodeID as either endpoint.
func (e *Edge) Touches(nodeID uuid.UUID) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// EdgePatch lists the edge fields a client may change. Endpoints are fixed
// once the edge exists.
type EdgePatch struct {
	Label      *string         `json:"label"`
	Properties *map[string]any `json:"properties"`
	Directed   *bool           `json:"directed"`
}

// IsEmpty reports whether the patch changes nothing.
func (p EdgePatch) IsEmpty() bool {
	return p.Label == nil && p.Properties == nil && p.Directed == nil
}

// Apply writes the patch onto e and re-validates it.
func (p EdgePatch) Apply(e *Edge) error {
	if p.Label != nil {
		e.Label = strings.TrimSpace(*p.Label)
	}
	if p.Properties != nil {
		e.Properties = datatypes.JSONMap(*p.Properties)
		if e.Properties == nil {
			e.Properties = datatypes.JSONMap{}
		}
	}
	if p.Directed != nil {
		e.Directed = *p.Directed
	}
	return e.Validate()
}

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	out := e
	out.Properties = cloneMap(e.Properties)
	return out
}
