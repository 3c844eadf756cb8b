package util

import (
	"time"

	metrics "github.com/rcrowley/go-metrics"
)

// Time records the elapsed time of the enclosing operation under name in the
// default metrics registry. Defer the returned function at the top of the
// operation being measured.
func Time(name string) func() {
	begin := time.Now()
	return func() {
		t := metrics.GetOrRegisterTimer(name, metrics.DefaultRegistry)
		t.Update(time.Since(begin))
	}
}
