// Package domain models tropical cyclone best-track data and the derived
// views used to draw storm tracks on a map.
//
// # Data Source
//
// Observations come from the NOAA International Best Track Archive for
// Climate Stewardship (IBTrACS), North Atlantic subset, distributed as
// ibtracs.NA.list.v04r01.csv at https://www.ncei.noaa.gov/products/international-best-track-archive.
// Each row is one 3- or 6-hourly fix of a storm's position and intensity.
//
// # IBTrACS Conventions
//
// Columns used:
//
//	NAME      storm name, upper case ("IAN"); "NOT_NAMED" for unnamed systems
//	SEASON    year of the storm season, integer
//	ISO_TIME  "2022-09-28 18:00:00" in UTC
//	LAT, LON  decimal degrees, western longitudes negative
//	USA_WIND  maximum sustained wind (knots in the archive, displayed as reported)
//	USA_SSHS  Saffir-Simpson category code, see below
//
// The file carries a second header line with units ("Year", "degrees_north").
// Its SEASON value never parses as an integer, so it can never match a target.
//
// Blank fields are a single space. Missing numeric values are treated as
// absent rather than zero; see [Optional].
//
// Saffir-Simpson category codes (USA_SSHS):
//
//	-5..-2  not designated (unknown, post-tropical, disturbance, subtropical)
//	-1      tropical depression
//	 0      tropical storm
//	 1..5   hurricane category
//
// # Derived Views
//
// A [Track] is the time-ordered list of observations for one [Target].
// From a track the package derives a [Summary], the colored [Segment] list
// and the three emphasized [Marker] points. All of them are pure functions
// of the track.
package domain
