package service

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"logigraph-console/internal/model"
)

const (
	nodeOriginX  = 150
	nodeOriginY  = 150
	nodeSpacingX = 200
	nodeOffsetY  = 150
)

type RoutingService struct {
	warehouses WarehouseSource
	routes     RouteSource
}

func NewRoutingService(warehouses WarehouseSource, routes RouteSource) *RoutingService {
	return &RoutingService{warehouses: warehouses, routes: routes}
}

// Graph lays the warehouses out on a zig-zag line and draws the backend's
// optimal path between them.
func (s *RoutingService) Graph(ctx context.Context) (model.RouteGraph, error) {
	var (
		warehouses []model.Warehouse
		route      model.OptimalRoute
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		warehouses, err = s.warehouses.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		route, err = s.routes.OptimalPath(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.RouteGraph{}, err
	}

	return buildGraph(warehouses, route), nil
}

func buildGraph(warehouses []model.Warehouse, route model.OptimalRoute) model.RouteGraph {
	graph := model.RouteGraph{
		Nodes: make([]model.GraphNode, 0, len(warehouses)),
		Edges: make([]model.GraphEdge, 0, len(route.Edges)),
	}

	for i, warehouse := range warehouses {
		graph.Nodes = append(graph.Nodes, model.GraphNode{
			ID:    strconv.FormatInt(warehouse.ID, 10),
			Label: warehouse.Name,
			Position: model.Position{
				X: nodeOriginX + i*nodeSpacingX,
				Y: nodeOriginY + (i%2)*nodeOffsetY,
			},
		})
	}

	for i, edge := range route.Edges {
		graph.Edges = append(graph.Edges, model.GraphEdge{
			ID:      fmt.Sprintf("e-%d", i),
			Source:  strconv.FormatInt(edge.From, 10),
			Target:  strconv.FormatInt(edge.To, 10),
			Label:   strconv.FormatFloat(edge.Distance, 'f', -1, 64) + " km",
			Optimal: true,
		})
		graph.TotalDistance += edge.Distance
	}

	if route.TotalDistance > 0 {
		graph.TotalDistance = route.TotalDistance
	}

	return graph
}
