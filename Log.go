package Go_Ordered

import "github.com/sirupsen/logrus"

// Log receives Debug traces of structural events: B-tree splits and merges,
// skip list level changes, segment tree construction. Nothing is emitted at the
// default Info level. It is the only package-level state and holds no data of
// any structure.
var Log = logrus.New()

// Tracing reports whether Debug traces are enabled. Callers check it before
// building fields so that hot paths stay allocation free.
func Tracing() bool {
	return Log.IsLevelEnabled(logrus.DebugLevel)
}
