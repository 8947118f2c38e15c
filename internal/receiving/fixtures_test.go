package receiving

// shortageReport has one overage section with two morning receipts followed
// by a shortage section.
var shortageReport = []string{
	"BLIND RECEIVING REPORT",                      // 0
	"100001  WIDGET 12CT            12    18     6", // 1 overage
	"100001  08:00  LP000101        12    A04",      // 2
	"100001  09:00  LP000102         6    A05",      // 3
	"100002  GADGET 6CT             18    12     6", // 4 shortage
	"100002  10:00  LP000201         6    A06",      // 5
	"100002  10:30  LP000202         6    D12",      // 6 inaccessible
}

// overageOnlyReport has no shortage and a partial pallet of 7.
var overageOnlyReport = []string{
	"100001  WIDGET                  6     7     1", // 0 overage
	"100001  08:00  LP000101          7    A04",     // 1
}

// noOverageReport has a shortage and an exact section but no overage.
var noOverageReport = []string{
	"100002  GADGET   18  12  6",   // 0 shortage
	"100002  10:00  LP1   7   A04", // 1
	"100003  THING    6   6   0",   // 2 exact
	"100003  11:00  LP2   6   A05", // 3
}
