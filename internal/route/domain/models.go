package domain

// Route is a fixed origin→destination record with a base price. Trips on a
// route are priced from BasePriceCents at booking time.
type Route struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	OriginName      string  `json:"origin_name"`
	OriginLat       float64 `json:"origin_lat"`
	OriginLon       float64 `json:"origin_lon"`
	DestinationName string  `json:"destination_name"`
	DestinationLat  float64 `json:"destination_lat"`
	DestinationLon  float64 `json:"destination_lon"`
	BasePriceCents  int     `json:"base_price_cents"`
	Currency        string  `json:"currency"`
	IsActive        bool    `json:"is_active"`
}

// RouteSummary is the list-view shape of a route.
type RouteSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	OriginName      string `json:"origin_name"`
	DestinationName string `json:"destination_name"`
	BasePriceCents  int    `json:"base_price_cents"`
	Currency        string `json:"currency"`
}

type RouteStop struct {
	ID        string  `json:"id"`
	RouteID   string  `json:"route_id"`
	StopOrder int     `json:"stop_order"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

type RouteDetail struct {
	Route RouteSummary `json:"route"`
	Stops []RouteStop  `json:"stops"`
}
