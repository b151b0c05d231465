// Package manifest loads storage object listings and turns object keys into
// items: identifiers derived from the key path plus IIIF image and thumbnail
// URLs. Listings may be JSONL, YAML or Parquet (e.g. an S3 Inventory export).
package manifest
