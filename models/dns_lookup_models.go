package models

import "github.com/vit0-9/imagefetch_api/pkg/utils"

// DNSLookupResponse is the output of a DNS lookup.
type DNSLookupResponse struct {
	Domain  string                       `json:"domain"`
	Records map[string][]utils.DNSRecord `json:"records"`          // Keyed by record type
	Errors  map[string]string            `json:"errors,omitempty"` // Errors for specific record type lookups
}
