package blackjack

// hand tracks a blackjack hand as the hard total plus the number of
// aces held. An ace counts as 11 (is "usable") whenever doing so does
// not bust the hand; at most one ace can ever be usable at a time.
type hand struct {
	hard int // all aces counted as 1
	aces int
}

func (h *hand) add(card int) {
	h.hard += card
	if card == Ace {
		h.aces++
	}
}

// sum returns the value of the hand, counting one ace as 11 if possible
func (h *hand) sum() int {
	if h.usableAce() {
		return h.hard + 10
	}
	return h.hard
}

// usableAce returns whether an ace is currently counted as 11
func (h *hand) usableAce() bool {
	return h.aces > 0 && h.hard+10 <= maxSum
}

func (h *hand) bust() bool {
	return h.sum() > maxSum
}
