package utils

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"github.com/rs/zerolog"

	"github.com/vit0-9/imagefetch_api/pkg/safefetch"
)

// IPInfoData describes an address as seen by the external fetcher.
type IPInfoData struct {
	IPAddress          string
	IsValid            bool
	Version            string
	Classification     string
	FetchAllowed       bool
	IsLoopback         bool
	IsPrivate          bool
	IsMulticast        bool
	IsLinkLocalUnicast bool
	IsGlobalUnicast    bool
	Error              string

	CountryCode    string
	CountryName    string
	CityName       string
	TimeZone       string
	ASN            uint
	ASOrganization string
	GeoError       string
}

// GeoIP holds the optional MaxMind readers. A nil reader disables that part
// of the lookup.
type GeoIP struct {
	cityDB *geoip2.Reader
	asnDB  *geoip2.Reader
	logger zerolog.Logger
}

// OpenGeoIP opens whichever databases have a path. Failures are logged and
// leave that lookup disabled; they never stop the server.
func OpenGeoIP(cityDBPath, asnDBPath string, logger zerolog.Logger) *GeoIP {
	g := &GeoIP{logger: logger.With().Str("component", "geoip").Logger()}

	if cityDBPath != "" {
		db, err := geoip2.Open(cityDBPath)
		if err != nil {
			g.logger.Error().Err(err).Str("path", cityDBPath).Msg("Could not open GeoLite2-City database, city lookups disabled")
		} else {
			g.cityDB = db
			g.logger.Info().Str("path", cityDBPath).Msg("Loaded GeoLite2-City database")
		}
	}

	if asnDBPath != "" {
		db, err := geoip2.Open(asnDBPath)
		if err != nil {
			g.logger.Error().Err(err).Str("path", asnDBPath).Msg("Could not open GeoLite2-ASN database, ASN lookups disabled")
		} else {
			g.asnDB = db
			g.logger.Info().Str("path", asnDBPath).Msg("Loaded GeoLite2-ASN database")
		}
	}
	return g
}

// Close releases the open readers.
func (g *GeoIP) Close() {
	if g == nil {
		return
	}
	if g.cityDB != nil {
		if err := g.cityDB.Close(); err != nil {
			g.logger.Error().Err(err).Msg("Error closing GeoLite2-City database")
		}
	}
	if g.asnDB != nil {
		if err := g.asnDB.Close(); err != nil {
			g.logger.Error().Err(err).Msg("Error closing GeoLite2-ASN database")
		}
	}
}

// GetBasicIPInfo classifies ipStr with the fetch rules and adds GeoIP data
// when available. g may be nil.
func (g *GeoIP) GetBasicIPInfo(ipStr string) IPInfoData {
	data := IPInfoData{IPAddress: ipStr}

	var class safefetch.Classification
	if strings.Contains(ipStr, ":") {
		data.Version = "IPv6"
		class = safefetch.ClassifyIPv6(ipStr)
	} else {
		data.Version = "IPv4"
		class = safefetch.ClassifyIPv4(ipStr)
	}
	data.Classification = class.String()
	data.FetchAllowed = !class.Blocked()

	parsedIP := net.ParseIP(ipStr)
	if parsedIP == nil || class == safefetch.Unparseable {
		data.IsValid = false
		data.Version = ""
		data.Error = "Invalid IP address format"
		return data
	}
	data.IsValid = true

	data.IsLoopback = parsedIP.IsLoopback()
	data.IsPrivate = parsedIP.IsPrivate()
	data.IsMulticast = parsedIP.IsMulticast()
	data.IsLinkLocalUnicast = parsedIP.IsLinkLocalUnicast()
	data.IsGlobalUnicast = parsedIP.IsGlobalUnicast()

	if g == nil {
		data.GeoError = "GeoIP databases not configured"
		return data
	}

	var geoErrs []string
	if g.cityDB != nil {
		record, err := g.cityDB.City(parsedIP)
		if err != nil {
			geoErrs = append(geoErrs, fmt.Sprintf("City/Country lookup error: %v", err))
		} else if record != nil {
			data.CountryCode = record.Country.IsoCode
			data.CountryName = record.Country.Names["en"]
			data.CityName = record.City.Names["en"]
			data.TimeZone = record.Location.TimeZone
		}
	} else {
		geoErrs = append(geoErrs, "City/Country DB not loaded")
	}

	if g.asnDB != nil {
		record, err := g.asnDB.ASN(parsedIP)
		if err != nil {
			geoErrs = append(geoErrs, fmt.Sprintf("ASN lookup error: %v", err))
		} else if record != nil {
			data.ASN = record.AutonomousSystemNumber
			data.ASOrganization = record.AutonomousSystemOrganization
		}
	} else {
		geoErrs = append(geoErrs, "ASN DB not loaded")
	}

	if len(geoErrs) > 0 {
		data.GeoError = strings.Join(geoErrs, "; ")
	}
	return data
}
