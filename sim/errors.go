// sim/errors.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration     = errors.New("Invalid configuration")
	ErrInvalidModelState = errors.New("Non-positive effective speed")
	ErrParse             = errors.New("Parse error")
)

var (
	ErrDuplicateCandidate   = fmt.Errorf("%w: duplicate candidate name", ErrConfiguration)
	ErrEmptyFleet           = fmt.Errorf("%w: no candidates", ErrConfiguration)
	ErrInvalidBound         = fmt.Errorf("%w: invalid bound", ErrConfiguration)
	ErrInvalidCandidate     = fmt.Errorf("%w: invalid candidate", ErrConfiguration)
	ErrInvalidTrialCount    = fmt.Errorf("%w: trial count must be positive", ErrConfiguration)
	ErrInvalidWeather       = fmt.Errorf("%w: invalid weather tendency", ErrConfiguration)
	ErrInvertedBounds       = fmt.Errorf("%w: minimum exceeds maximum", ErrConfiguration)
	ErrMalformedTendency    = fmt.Errorf("%w: malformed weather tendency", ErrParse)
	ErrNoScenarios          = fmt.Errorf("%w: no scenarios", ErrConfiguration)
	ErrTallyMismatch        = errors.New("Tally does not match candidate set")
	ErrUnknownCandidate     = errors.New("Unknown candidate")
	ErrUnknownScenarioIndex = errors.New("Unknown scenario index")
)
