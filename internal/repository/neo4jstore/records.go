package neo4jstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"gorm.io/datatypes"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
)

func nodeProps(n *models.Node) (map[string]any, error) {
	properties, err := encodeProperties(n.Properties)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":         n.ID.String(),
		"label":      n.Label,
		"type":       n.Type,
		"properties": properties,
		"x":          n.X,
		"y":          n.Y,
		"fx":         floatOrNil(n.Fx),
		"fy":         floatOrNil(n.Fy),
		"createdAt":  n.CreatedAt,
		"updatedAt":  n.UpdatedAt,
	}, nil
}

func nodeFromProps(props map[string]any) (models.Node, error) {
	id, err := uuid.Parse(asString(props["id"]))
	if err != nil {
		return models.Node{}, fmt.Errorf("node id: %w", err)
	}
	properties, err := decodeProperties(props["properties"])
	if err != nil {
		return models.Node{}, err
	}
	return models.Node{
		ID:         id,
		Label:      asString(props["label"]),
		Type:       asString(props["type"]),
		Properties: properties,
		X:          asFloat(props["x"]),
		Y:          asFloat(props["y"]),
		Fx:         asOptionalFloat(props["fx"]),
		Fy:         asOptionalFloat(props["fy"]),
		CreatedAt:  asTime(props["createdAt"]),
		UpdatedAt:  asTime(props["updatedAt"]),
	}, nil
}

func edgeProps(e *models.Edge) (map[string]any, error) {
	properties, err := encodeProperties(e.Properties)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":         e.ID.String(),
		"label":      e.Label,
		"properties": properties,
		"directed":   e.Directed,
		"createdAt":  e.CreatedAt,
		"updatedAt":  e.UpdatedAt,
	}, nil
}

func edgeFromProps(props map[string]any, source, target string) (models.Edge, error) {
	id, err := uuid.Parse(asString(props["id"]))
	if err != nil {
		return models.Edge{}, fmt.Errorf("edge id: %w", err)
	}
	src, err := uuid.Parse(source)
	if err != nil {
		return models.Edge{}, fmt.Errorf("edge source: %w", err)
	}
	dst, err := uuid.Parse(target)
	if err != nil {
		return models.Edge{}, fmt.Errorf("edge target: %w", err)
	}
	properties, err := decodeProperties(props["properties"])
	if err != nil {
		return models.Edge{}, err
	}
	directed := true
	if v, ok := props["directed"].(bool); ok {
		directed = v
	}
	return models.Edge{
		ID:         id,
		Source:     src,
		Target:     dst,
		Label:      asString(props["label"]),
		Properties: properties,
		Directed:   directed,
		CreatedAt:  asTime(props["createdAt"]),
		UpdatedAt:  asTime(props["updatedAt"]),
	}, nil
}

// nodeFromRecord reads the vertex bound to key.
func nodeFromRecord(rec *neo4j.Record, key string) (models.Node, error) {
	v, ok := rec.Get(key)
	if !ok {
		return models.Node{}, fmt.Errorf("record has no %q", key)
	}
	n, ok := v.(neo4j.Node)
	if !ok {
		return models.Node{}, fmt.Errorf("%q is %T, not a node", key, v)
	}
	return nodeFromProps(n.Props)
}

// edgeFromRecord reads a row shaped as (r, source, target).
func edgeFromRecord(rec *neo4j.Record) (models.Edge, error) {
	v, ok := rec.Get("r")
	if !ok {
		return models.Edge{}, fmt.Errorf("record has no relationship")
	}
	rel, ok := v.(neo4j.Relationship)
	if !ok {
		return models.Edge{}, fmt.Errorf("r is %T, not a relationship", v)
	}
	src, _ := rec.Get("source")
	dst, _ := rec.Get("target")
	return edgeFromProps(rel.Props, asString(src), asString(dst))
}

func countFromRecord(rec *neo4j.Record, key string) int64 {
	v, _ := rec.Get(key)
	n, _ := v.(int64)
	return n
}

func encodeProperties(m datatypes.JSONMap) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return "", fmt.Errorf("marshaling properties: %w", err)
	}
	return string(b), nil
}

func decodeProperties(v any) (datatypes.JSONMap, error) {
	out := datatypes.JSONMap{}
	s, ok := v.(string)
	if !ok || s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("unmarshaling properties: %w", err)
	}
	return out, nil
}

func floatOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func asOptionalFloat(v any) *float64 {
	switch v.(type) {
	case float64, int64:
		f := asFloat(v)
		return &f
	}
	return nil
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case neo4j.LocalDateTime:
		return t.Time().UTC()
	}
	return time.Time{}
}
