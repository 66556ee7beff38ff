package domain

import (
	"strings"
	"time"
)

// Partition key prefixes of the rate-limit table.
const (
	IPKeyPrefix    = "IP#"
	EmailKeyPrefix = "EMAIL#"
)

// sortKeyLayout is ISO-8601 with millisecond precision, always UTC.
const sortKeyLayout = "2006-01-02T15:04:05.000Z"

// sortKeyCeiling sorts after every ULID suffix character.
const sortKeyCeiling = "~"

// RateLimitRecord is one accepted submission counted against a scope.
// PK: pk ("IP#<ip>" | "EMAIL#<email>"), SK: sk ("<timestamp>#<ulid>").
// TTL is a Unix timestamp used as DynamoDB TTL.
type RateLimitRecord struct {
	PK        string             `json:"pk" dynamodbav:"pk"`
	SK        string             `json:"sk" dynamodbav:"sk"`
	TTL       int64              `json:"ttl" dynamodbav:"ttl"`
	RequestID string             `json:"requestId" dynamodbav:"requestId"`
	Metadata  *RateLimitMetadata `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
}

type RateLimitMetadata struct {
	Service   string `json:"service,omitempty" dynamodbav:"service,omitempty"`
	UserAgent string `json:"userAgent,omitempty" dynamodbav:"userAgent,omitempty"`
}

// IPKey returns the IP-scoped partition key.
func IPKey(ip string) string { return IPKeyPrefix + ip }

// EmailKey returns the email-scoped partition key; the address is
// trimmed and lowercased so the scope is case-insensitive.
func EmailKey(email string) string {
	return EmailKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Timestamp formats t the way sort keys store it.
func Timestamp(t time.Time) string { return t.UTC().Format(sortKeyLayout) }

// SortKey builds a record sort key. The suffix keeps two records written in
// the same millisecond under one partition from overwriting each other.
func SortKey(t time.Time, suffix string) string {
	if suffix == "" {
		return Timestamp(t)
	}
	return Timestamp(t) + "#" + suffix
}

// SortKeyAfter returns the exclusive lower bound for records created
// strictly after t.
func SortKeyAfter(t time.Time) string {
	return Timestamp(t) + "#" + sortKeyCeiling
}
