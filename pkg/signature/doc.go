// Package signature defines the signature configuration record consumed by
// every renderer, together with the small pure helpers the layout rules rely
// on: separator resolution, UTM parameter appending, normalization and enum
// validation. The record is in-memory only; loading and persisting it as a
// file lives in pkg/config.
package signature
