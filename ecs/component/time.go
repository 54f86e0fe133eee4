package component

import "time"

// Time is the singleton tick clock written by the clock system.
type Time struct {
	Now   time.Duration
	Delta float64
	Tick  uint64
}

var TimeComponent = NewComponent[Time]()
