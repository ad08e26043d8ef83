package reconcile

import (
	"testing"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

func TestSplitByRegime(t *testing.T) {
	before := preMsg(1)
	dayBefore := preMsg(2)
	dayBefore.ReportDate = date(2012, 2, 5)
	onCutover := preMsg(3)
	onCutover.ReportDate = date(2012, 2, 6)
	after := preMsg(4)
	after.ReportDate = date(2014, 1, 2)

	pre, post := splitByRegime([]models.TradeMessage{before, dayBefore, onCutover, after}, cutover)
	if len(pre) != 2 || len(post) != 2 {
		t.Fatalf("split sizes: want 2/2 got %d/%d", len(pre), len(post))
	}
	if pre[0].MessageSeq != 1 || pre[1].MessageSeq != 2 {
		t.Fatalf("pre-era order not preserved: %+v", pre)
	}
	// Reports filed on the cutover date itself follow the new rules.
	if post[0].MessageSeq != 3 || post[1].MessageSeq != 4 {
		t.Fatalf("cutover-day report must land post-era: %+v", post)
	}
}

func TestSplitByRegime_Empty(t *testing.T) {
	pre, post := splitByRegime(nil, cutover)
	if len(pre) != 0 || len(post) != 0 {
		t.Fatalf("empty input must split to empty partitions")
	}
}
