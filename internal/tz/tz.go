// Package tz resolves coordinates to IANA time zones.
package tz

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// Locator looks up the time zone of a point.
type Locator struct {
	finder tzf.F
}

var (
	instance *Locator
	initErr  error
	once     sync.Once
)

// NewLocator returns the process-wide Locator.
// The finder keeps the zone polygons in memory, so it is built once.
func NewLocator() (*Locator, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &Locator{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// Name returns the IANA zone name, e.g. "Europe/Warsaw".
func (l *Locator) Name(latitude, longitude float64) (string, error) {
	name := l.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}

// Location returns the loaded zone for the point.
func (l *Locator) Location(latitude, longitude float64) (*time.Location, error) {
	name, err := l.Name(latitude, longitude)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}
