package seed

import "github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"

// EdgeSpec links two seed nodes by label.
type EdgeSpec struct {
	Source   string
	Target   string
	Label    string
	Directed bool
}

func describe(description, category string) map[string]any {
	return map[string]any{"description": description, "category": category}
}

// TechStackNodes is a small technology-stack graph.
var TechStackNodes = []models.NodeInput{
	{Label: "React", Type: "frontend-framework", Properties: describe("JavaScript library for building user interfaces", "Frontend"), X: -200, Y: -100},
	{Label: "TypeScript", Type: "programming-language", Properties: describe("Typed superset of JavaScript", "Language"), X: 0, Y: -200},
	{Label: "Node.js", Type: "runtime", Properties: describe("JavaScript runtime built on Chrome V8 engine", "Backend"), X: 200, Y: -100},
	{Label: "Express", Type: "backend-framework", Properties: describe("Fast, unopinionated web framework for Node.js", "Backend"), X: 300, Y: 0},
	{Label: "MongoDB", Type: "database", Properties: describe("Document-oriented NoSQL database", "Database"), X: 200, Y: 100},
	{Label: "Mongoose", Type: "orm", Properties: describe("MongoDB object modeling for Node.js", "Database"), X: 100, Y: 150},
	{Label: "D3.js", Type: "visualization-library", Properties: describe("Data-driven documents library for visualization", "Frontend"), X: -300, Y: 0},
	{Label: "Force Graph", Type: "component", Properties: describe("Physics-based graph visualization component", "Frontend"), X: -250, Y: 100},
	{Label: "REST API", Type: "architecture", Properties: describe("Representational State Transfer architecture", "Architecture"), X: 0, Y: 0},
	{Label: "Graph Database", Type: "concept", Properties: describe("Database that uses graph structures for queries", "Database"), X: 0, Y: 200},
	{Label: "Tailwind CSS", Type: "css-framework", Properties: describe("Utility-first CSS framework", "Frontend"), X: -100, Y: -150},
	{Label: "Docker", Type: "containerization", Properties: describe("Platform for developing, shipping, and running applications", "DevOps"), X: 100, Y: -50},
	{Label: "Neo4j", Type: "graph-database", Properties: describe("Native graph database management system", "Database"), X: -100, Y: 250},
}

var TechStackEdges = []EdgeSpec{
	{Source: "React", Target: "TypeScript", Label: "uses", Directed: true},
	{Source: "Node.js", Target: "TypeScript", Label: "supports", Directed: true},
	{Source: "Express", Target: "Node.js", Label: "runs-on", Directed: true},
	{Source: "Mongoose", Target: "MongoDB", Label: "connects-to", Directed: true},
	{Source: "Express", Target: "Mongoose", Label: "uses", Directed: true},
	{Source: "Force Graph", Target: "D3.js", Label: "built-with", Directed: true},
	{Source: "React", Target: "Force Graph", Label: "renders", Directed: true},
	{Source: "Express", Target: "REST API", Label: "implements", Directed: true},
	{Source: "MongoDB", Target: "Graph Database", Label: "can-model", Directed: true},
	{Source: "React", Target: "Tailwind CSS", Label: "styled-with", Directed: true},
	{Source: "Node.js", Target: "Docker", Label: "containerized-with", Directed: true},
	{Source: "MongoDB", Target: "Docker", Label: "containerized-with", Directed: true},
	{Source: "Neo4j", Target: "Graph Database", Label: "is-type-of", Directed: true},
	{Source: "Force Graph", Target: "Neo4j", Label: "inspired-by", Directed: false},
	{Source: "REST API", Target: "TypeScript", Label: "typed-with", Directed: true},
}
