package model

import "github.com/basinsim/basinsim/internal/kernels"

// wgenDate adapts Date to kernels.WGENDate. Date itself can't satisfy the
// interface directly since its Add returns a concrete Date, not a
// kernels.WGENDate; this thin wrapper is the only place model depends on
// kernels.
type wgenDate struct {
	Date
}

func (d wgenDate) Add(days int) kernels.WGENDate {
	return wgenDate{Date: d.Date.Add(days)}
}

// AsWGENDate adapts d for use as the calendar handle passed into
// kernels.NewWGENState and threaded through kernels.WGENStep.
func (d Date) AsWGENDate() kernels.WGENDate {
	return wgenDate{Date: d}
}
