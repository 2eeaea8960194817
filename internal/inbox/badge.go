package inbox

import "strconv"

// UpdateBadge makes host reflect count: no badge for zero, otherwise a badge
// showing exactly count. It is idempotent and a nil host is ignored.
func UpdateBadge(host BadgeHost, count int) {
	if host == nil {
		return
	}

	if count > 0 {
		host.SetBadge(strconv.Itoa(count))
		return
	}

	if _, ok := host.Badge(); ok {
		host.RemoveBadge()
	}
}
