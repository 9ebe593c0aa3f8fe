package redundancy

// SetShuffle replaces the host shuffle used when Random is set.
func (r *Redundancy) SetShuffle(shuffle func([]string)) {
	r.shuffle = shuffle
}
