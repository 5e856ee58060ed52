package upstream

import (
	"net/http"
	"time"

	"logigraph-console/internal/metrics"
)

const (
	TargetCore     = "core"
	TargetTracking = "tracking"
)

type Options struct {
	CoreURL     string
	TrackingURL string
	Timeout     time.Duration
	// Base is the transport under the interceptors; nil means
	// http.DefaultTransport.
	Base    http.RoundTripper
	Metrics *metrics.Metrics
}

// Backends is every resource client the console uses. Each base URL gets its
// own interceptor instance; both read the same request-scoped session.
type Backends struct {
	Auth       *AuthClient
	Catalog    *CatalogClient
	Customers  *CustomerClient
	Warehouses *WarehouseClient
	Orders     *OrderClient
	Vehicles   *VehicleClient
	Inventory  *InventoryClient
	Dashboard  *DashboardClient
	Routing    *RoutingClient
	Tracking   *TrackingClient
}

func NewBackends(opts Options) *Backends {
	issuer := NewClient(TargetCore, opts.CoreURL, NewPlainTransport(TargetCore, opts.Base, opts.Metrics), opts.Timeout)
	core := NewClient(TargetCore, opts.CoreURL, NewAuthTransport(TargetCore, opts.Base, opts.Metrics), opts.Timeout)
	tracking := NewClient(TargetTracking, opts.TrackingURL, NewAuthTransport(TargetTracking, opts.Base, opts.Metrics), opts.Timeout)

	return &Backends{
		Auth:       NewAuthClient(issuer),
		Catalog:    NewCatalogClient(core),
		Customers:  NewCustomerClient(core),
		Warehouses: NewWarehouseClient(core),
		Orders:     NewOrderClient(core),
		Vehicles:   NewVehicleClient(core),
		Inventory:  NewInventoryClient(core),
		Dashboard:  NewDashboardClient(core),
		Routing:    NewRoutingClient(core),
		Tracking:   NewTrackingClient(tracking),
	}
}
