package enricher

// Entity is a DXCC entity, or a part of one, with its zones and location.
type Entity struct {
	MainPrefix string  `json:"main_prefix"`
	Country    string  `json:"country"`
	Part       string  `json:"part,omitempty"`
	Continent  string  `json:"continent"`
	CQZone     int     `json:"cq_zone"`
	ITUZone    int     `json:"itu_zone"`
	DXCC       int     `json:"dxcc"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	TimeOffset float64 `json:"time_offset"`
}
