//go:build !cgo_sqlite

package snapshot

import _ "modernc.org/sqlite" // pure Go SQLite driver

const driverName = "sqlite"
