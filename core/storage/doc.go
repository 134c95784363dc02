// Package storage wraps the S3-compatible object store that holds mirrored
// cover artwork.
//
// The Client interface narrows minio-go to the handful of operations the
// mirror needs so tests can substitute the mock in the mocks subpackage.
package storage
