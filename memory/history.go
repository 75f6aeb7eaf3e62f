package memory

// History is the append-only conversation log. The engine appends during a
// query turn; entries are never mutated or removed afterwards. Access is not
// synchronized: the caller serializes queries.
type History struct {
	msgs []Message
}

// NewHistory starts a history from a (possibly nil) persisted transcript.
func NewHistory(initial []Message) *History {
	h := &History{}
	h.msgs = append(h.msgs, initial...)
	return h
}

// Append adds messages to the end of the history.
func (h *History) Append(msgs ...Message) {
	h.msgs = append(h.msgs, msgs...)
}

// Messages returns a copy of the log, oldest first.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.msgs))
	copy(out, h.msgs)
	return out
}

// Len reports the number of entries.
func (h *History) Len() int { return len(h.msgs) }
