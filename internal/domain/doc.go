// Package domain models National Weather Service (NWS) alert and forecast data.
//
// # Data Source
//
// All data comes from the NWS public API at https://api.weather.gov, which
// serves GeoJSON (Accept: application/geo+json) and requires a User-Agent
// header identifying the caller. Three endpoints are consumed:
//
//	GET {base}/alerts/active/area/{state}  →  {"features": [{"properties": {...}}, ...]}
//	GET {base}/points/{lat},{lon}          →  {"properties": {"forecast": "<url>"}}
//	GET <forecast-url>                     →  {"properties": {"periods": [...]}}
//
// The forecast is a two-step lookup: the points endpoint resolves a coordinate
// to a forecast grid and returns the URL of that grid's forecast, which is then
// fetched directly. Forecast periods arrive in chronological order, alternating
// day and night ("Tonight", "Saturday", "Saturday Night", ...); only the first
// five are rendered.
//
// # Missing Field Policy
//
// Every upstream field is treated as optionally missing. Absence never fails a
// request: formatters substitute "Unknown" for missing alert fields and
// "No specific instructions provided" for a missing instruction. These exact
// placeholder strings are load-bearing output, not incidental text.
package domain
