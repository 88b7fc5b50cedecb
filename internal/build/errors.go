package build

import "errors"

// Sentinel errors classifying the stage a run failed in. They are always
// wrapped with the underlying cause.
var (
	ErrStaleness = errors.New("blogindex: staleness check error")
	ErrDiscovery = errors.New("blogindex: discovery error")
	ErrParse     = errors.New("blogindex: parse error")
	ErrRender    = errors.New("blogindex: render error")
	ErrWrite     = errors.New("blogindex: write error")
)
