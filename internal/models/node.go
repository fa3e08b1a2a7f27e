package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultNodeType is assigned when a node is created without a type.
const DefaultNodeType = "default"

// Node is a labeled graph vertex with free-form properties and layout coordinates.
type Node struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Label      string            `gorm:"type:text;not null" json:"label" validate:"required"`
	Type       string            `gorm:"type:text;not null;default:'default';index" json:"type" validate:"required"`
	Properties datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"properties"`
	X          float64           `gorm:"not null;default:0" json:"x"`
	Y          float64           `gorm:"not null;default:0" json:"y"`
	Fx         *float64          `json:"fx"`
	Fy         *float64          `json:"fy"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// BeforeCreate assigns an id when the caller did not.
func (n *Node) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// BeforeSave rejects records that break the node invariants.
func (n *Node) BeforeSave(tx *gorm.DB) error {
	return n.Validate()
}

// NodeInput is the body accepted when creating a node.
type NodeInput struct {
	Label      string         `json:"label"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
}

// NewNode builds a validated node from input, applying defaults for unset fields.
func NewNode(in NodeInput) (*Node, error) {
	n := &Node{
		Label:      strings.TrimSpace(in.Label),
		Type:       strings.TrimSpace(in.Type),
		Properties: datatypes.JSONMap(in.Properties),
		X:          in.X,
		Y:          in.Y,
	}
	if n.Type == "" {
		n.Type = DefaultNodeType
	}
	if n.Properties == nil {
		n.Properties = datatypes.JSONMap{}
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

var nodeMessages = map[string]string{
	"Label.required": "Label is required",
	"Type.required":  "Type must not be empty",
}

// Validate checks the node invariants.
func (n *Node) Validate() error {
	if err := validate.Struct(n); err != nil {
		return firstFailure(err, nodeMessages, "invalid node")
	}
	return nil
}

// NodePatch lists the node fields a client may change. A nil pointer leaves
// the field untouched.
type NodePatch struct {
	Label      *string         `json:"label"`
	Type       *string         `json:"type"`
	Properties *map[string]any `json:"properties"`
	X          *float64        `json:"x"`
	Y          *float64        `json:"y"`
	Fx         NullableFloat   `json:"fx"`
	Fy         NullableFloat   `json:"fy"`
}

// IsEmpty reports whether the patch changes nothing.
func (p NodePatch) IsEmpty() bool {
	return p.Label == nil && p.Type == nil && p.Properties == nil &&
		p.X == nil && p.Y == nil && !p.Fx.Set && !p.Fy.Set
}

// Apply writes the patch onto n and re-validates it. n is left modified even
// when validation fails; callers discard it in that case.
func (p NodePatch) Apply(n *Node) error {
	if p.Label != nil {
		n.Label = strings.TrimSpace(*p.Label)
	}
	if p.Type != nil {
		n.Type = strings.TrimSpace(*p.Type)
	}
	if p.Properties != nil {
		n.Properties = datatypes.JSONMap(*p.Properties)
		if n.Properties == nil {
			n.Properties = datatypes.JSONMap{}
		}
	}
	if p.X != nil {
		n.X = *p.X
	}
	if p.Y != nil {
		n.Y = *p.Y
	}
	if p.Fx.Set {
		n.Fx = p.Fx.Value
	}
	if p.Fy.Set {
		n.Fy = p.Fy.Value
	}
	return n.Validate()
}

// NullableFloat distinguishes an omitted key from an explicit null.
type NullableFloat struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON is only invoked when the key is present.
func (f *NullableFloat) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// Float returns a NullableFloat pinned at v.
func Float(v float64) NullableFloat { return NullableFloat{Set: true, Value: &v} }

// Null returns a NullableFloat that clears the field.
func Null() NullableFloat { return NullableFloat{Set: true} }

// Clone returns a deep copy of n, including its properties map.
func (n Node) Clone() Node {
	out := n
	out.Properties = cloneMap(n.Properties)
	if n.Fx != nil {
		v := *n.Fx
		out.Fx = &v
	}
	if n.Fy != nil {
		v := *n.Fy
		out.Fy = &v
	}
	return out
}

func cloneMap(m datatypes.JSONMap) datatypes.JSONMap {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		out := make(datatypes.JSONMap, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return m
	}
	return datatypes.JSONMap(out)
}
