package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vit0-9/imagefetch_api/models"
	"github.com/vit0-9/imagefetch_api/pkg/utils"
)

// NetworkDiagnosticsHandlers explains how the external fetcher sees an IP or
// a domain. Operators use them to understand why an import was refused.
type NetworkDiagnosticsHandlers struct {
	geo      *utils.GeoIP
	resolver utils.Resolver
}

func NewNetworkDiagnosticsHandlers(geo *utils.GeoIP, resolver utils.Resolver) *NetworkDiagnosticsHandlers {
	return &NetworkDiagnosticsHandlers{geo: geo, resolver: resolver}
}

var defaultDNSRecordTypes = []string{"A", "AAAA", "CNAME"}

const dnsLookupTimeout = 10 * time.Second

// DNSLookupHandler godoc
// @Summary      Resolve a domain the way the fetcher does
// @Description  Returns A, AAAA and CNAME records. Each address carries the classification the external fetcher would apply to it.
// @Tags         Network Diagnostics
// @Produce      json
// @Param        domain query string true "Domain to lookup"
// @Param        record_types query []string false "Record types to query (A, AAAA, CNAME). Defaults to all three." collectionFormat(csv)
// @Success      200 {object} models.DNSLookupResponse "Records and per-type errors"
// @Failure      400 {object} map[string]string "Error: missing domain"
// @Router       /net/dns-lookup [get]
func (h *NetworkDiagnosticsHandlers) DNSLookupHandler(c *gin.Context) {
	domainQuery := strings.TrimSpace(c.Query("domain"))
	if domainQuery == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain query parameter is required"})
		return
	}

	var typesToLookup []string
	for _, raw := range c.QueryArray("record_types") {
		for _, rt := range strings.Split(raw, ",") {
			if rt = strings.ToUpper(strings.TrimSpace(rt)); rt != "" {
				typesToLookup = append(typesToLookup, rt)
			}
		}
	}
	if len(typesToLookup) == 0 {
		typesToLookup = defaultDNSRecordTypes
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dnsLookupTimeout)
	defer cancel()

	records, lookupErrors := utils.LookupDNSRecords(ctx, h.resolver, domainQuery, typesToLookup)

	c.JSON(http.StatusOK, models.DNSLookupResponse{
		Domain:  domainQuery,
		Records: records,
		Errors:  lookupErrors,
	})
}

// IPInfoHandler godoc
// @Summary      Classify an IP address
// @Description  Reports whether the external fetcher would connect to the address, plus GeoIP/ASN details when the databases are configured.
// @Tags         Network Diagnostics
// @Produce      json
// @Param        ip query string true "IP address"
// @Success      200 {object} models.IPInfoResponse "IP information"
// @Failure      400 {object} map[string]string "Error: missing IP address"
// @Router       /net/ip-info [get]
func (h *NetworkDiagnosticsHandlers) IPInfoHandler(c *gin.Context) {
	ipAddress := strings.TrimSpace(c.Query("ip"))
	if ipAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ip query parameter is required"})
		return
	}

	info := h.geo.GetBasicIPInfo(ipAddress)

	c.JSON(http.StatusOK, models.IPInfoResponse{
		IPAddress:          info.IPAddress,
		IsValid:            info.IsValid,
		Version:            info.Version,
		Classification:     info.Classification,
		FetchAllowed:       info.FetchAllowed,
		IsLoopback:         info.IsLoopback,
		IsPrivate:          info.IsPrivate,
		IsMulticast:        info.IsMulticast,
		IsLinkLocalUnicast: info.IsLinkLocalUnicast,
		IsGlobalUnicast:    info.IsGlobalUnicast,
		Error:              info.Error,
		CountryCode:        info.CountryCode,
		CountryName:        info.CountryName,
		CityName:           info.CityName,
		TimeZone:           info.TimeZone,
		ASN:                info.ASN,
		ASOrganization:     info.ASOrganization,
		GeoError:           info.GeoError,
	})
}
