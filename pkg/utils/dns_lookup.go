package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/vit0-9/imagefetch_api/pkg/safefetch"
)

type DNSRecord struct {
	Type           string `json:"type"`
	Value          string `json:"value"`
	Classification string `json:"classification,omitempty"` // A/AAAA only
}

// LookupDNSRecords resolves the requested record types for domain. A and AAAA
// answers carry the classification the external fetcher would apply.
func LookupDNSRecords(ctx context.Context, resolver Resolver, domain string, recordTypes []string) (map[string][]DNSRecord, map[string]string) {
	results := make(map[string][]DNSRecord)
	errors := make(map[string]string)

	for _, recordType := range recordTypes {
		var records []DNSRecord
		var err error

		normalizedType := strings.ToUpper(strings.TrimSpace(recordType))

		switch normalizedType {
		case "A", "AAAA":
			addrs, e := resolver.LookupIPAddr(ctx, domain)
			err = e
			for _, a := range addrs {
				isV4 := a.IP.To4() != nil
				if isV4 != (normalizedType == "A") {
					continue
				}
				records = append(records, DNSRecord{
					Type:           normalizedType,
					Value:          a.IP.String(),
					Classification: safefetch.ClassifyIP(a.IP).String(),
				})
			}
		case "CNAME":
			cname, e := resolver.LookupCNAME(ctx, domain)
			err = e
			if cname != "" {
				records = append(records, DNSRecord{Type: "CNAME", Value: strings.TrimSuffix(cname, ".")})
			}
		default:
			errors[recordType] = fmt.Sprintf("Unsupported record type: %s", recordType)
			continue
		}

		if err != nil {
			errors[normalizedType] = err.Error()
		}
		if len(records) > 0 {
			results[normalizedType] = records
		}
	}
	return results, errors
}
