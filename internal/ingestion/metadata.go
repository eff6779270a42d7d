package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes where an ingested document came from
type Metadata struct {
	Source    string `json:"source"`
	Kind      Kind   `json:"kind"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Bytes     int    `json:"bytes"`
	Platform  string `json:"platform,omitempty"` // Detected job board platform
	Rendered  bool   `json:"rendered,omitempty"`
}

// NewMetadata builds Metadata for cleaned content read at the given time
func NewMetadata(content, source string, kind Kind, at time.Time) *Metadata {
	return &Metadata{
		Source:    source,
		Kind:      kind,
		Timestamp: at.UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Bytes:     len(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
