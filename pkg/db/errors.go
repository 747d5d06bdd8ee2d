package db

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFound reports whether err is a record-not-found from the ORM.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
