//go:build cgo_sqlite

package snapshot

import _ "github.com/mattn/go-sqlite3" // cgo SQLite driver

const driverName = "sqlite3"
