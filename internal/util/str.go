package util

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

// Datetime is the format to use anywhere we need to output a date+time to an user.
func Datetime(iface interface{}) string {
	t, ok := asTime(iface)
	if !ok {
		return "-"
	}

	return t.Format("2006-01-02 15h04 MST")
}

func asTime(iface interface{}) (time.Time, bool) {
	switch iface := iface.(type) {
	case time.Time:
		return iface, true
	case TimeAsTimestamp:
		return iface.Time(), true
	case null.Time:
		return iface.Time, iface.Valid
	default:
		panic(fmt.Errorf("unexpected type %T", iface))
	}
}
