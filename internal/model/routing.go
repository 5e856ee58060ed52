package model

type RouteEdge struct {
	From     int64   `json:"from"`
	To       int64   `json:"to"`
	Distance float64 `json:"distance"`
}

type OptimalRoute struct {
	Edges         []RouteEdge `json:"edges"`
	Path          []int64     `json:"path,omitempty"`
	TotalDistance float64     `json:"totalDistance,omitempty"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type GraphNode struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
}

type GraphEdge struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Label   string `json:"label"`
	Optimal bool   `json:"optimal"`
}

type RouteGraph struct {
	Nodes         []GraphNode `json:"nodes"`
	Edges         []GraphEdge `json:"edges"`
	TotalDistance float64     `json:"totalDistance"`
}
