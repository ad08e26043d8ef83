package reconcile

import (
	"time"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

// splitByRegime partitions messages into the pre- and post-cutover eras
// by report date. Reports filed before the cutover follow the old
// reporting conventions; reports filed on or after it follow the new
// ones. Relative input order is preserved within each partition.
func splitByRegime(msgs []models.TradeMessage, cutover time.Time) (pre, post []models.TradeMessage) {
	for _, m := range msgs {
		if m.ReportDate.Before(cutover) {
			pre = append(pre, m)
		} else {
			post = append(post, m)
		}
	}
	return pre, post
}
