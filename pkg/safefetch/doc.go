// Package safefetch downloads images from attacker-supplied URLs without
// letting the server be used to reach private networks.
//
// Validation rejects non-HTTP schemes, embedded credentials, local hostnames
// and any host that is, or resolves to, a private or reserved address. The
// fetch step follows at most a fixed number of redirects, validating every
// hop again, and connects only to the addresses that passed validation.
//
// Rejections are *RejectionError values carrying a Reason code. Codes are
// meant for server logs; callers should show clients one generic message.
package safefetch
