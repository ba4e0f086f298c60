package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IsDuplicateKey reports whether err is a MySQL unique-constraint
// violation (error 1062). Repositories use it to turn races on unique
// keys into domain conflicts instead of opaque driver errors.
func IsDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// IsDuplicateKeyOn reports whether err is a 1062 raised by the named
// unique index. MySQL carries the key name in the error message
// ("Duplicate entry '...' for key 'name'"); when a table has more than
// one unique key this is how the violated one is told apart.
func IsDuplicateKeyOn(err error, keyName string) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062 &&
		strings.Contains(myErr.Message, keyName)
}
