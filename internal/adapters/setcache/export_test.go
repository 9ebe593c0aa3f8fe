package setcache

import "time"

// SetClock replaces the clock of a cache.
func (d *Disk) SetClock(now func() time.Time) { d.now = now }

// SetClock replaces the clock of a cache.
func (r *Redis) SetClock(now func() time.Time) { r.now = now }

// SetClock replaces the clock of a cache.
func (s *SQLite) SetClock(now func() time.Time) { s.now = now }
