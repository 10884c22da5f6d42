// Package domain contains the fixed data served by the API: sample items,
// supported languages and the mock translation table. The values are
// constant for the lifetime of the process and safe for concurrent reads.
package domain
