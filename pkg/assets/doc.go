// Package assets turns logo and headshot images into something a signature
// can reference: inline data URIs for self-contained signatures, or public
// URLs after publishing to S3-compatible storage. Mail clients that block
// data URIs need the published form.
package assets
