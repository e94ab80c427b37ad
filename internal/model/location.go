package model

// Location is the geolocation of a client IP address, as resolved by the
// geo package. Coordinates are carried as strings so they can be used
// directly as metric label values without locale-dependent formatting.
type Location struct {
	City      string
	Country   string
	IPAddress string
	Latitude  string
	Longitude string
}

// UnknownLocation is the sentinel returned whenever a lookup cannot resolve
// an IP, including when the IP itself is empty.
func UnknownLocation(ip string) Location {
	return Location{
		City:      "Unknown",
		Country:   "Unknown",
		IPAddress: ip,
		Latitude:  "0.0",
		Longitude: "0.0",
	}
}
