package request

// Equal reports whether two requests declare the same transaction. Advice
// maps compare as entry sets regardless of iteration order, and custom
// script templates compare by content commitment; every other field
// compares structurally. Decoding a serialized request therefore yields a
// request Equal to the original even where internal representations are
// not canonical.
func (r *TransactionRequest) Equal(other *TransactionRequest) bool {
	if r == nil || other == nil {
		return r == other
	}

	if !r.adviceMap.Equal(other.adviceMap) {
		return false
	}
	if !r.scriptTemplate.Equal(other.scriptTemplate) {
		return false
	}

	if len(r.unauthenticatedInputNotes) != len(other.unauthenticatedInputNotes) {
		return false
	}
	for i, n := range r.unauthenticatedInputNotes {
		if !n.Equal(other.unauthenticatedInputNotes[i]) {
			return false
		}
	}

	if len(r.inputNotes) != len(other.inputNotes) {
		return false
	}
	for id, args := range r.inputNotes {
		otherArgs, ok := other.inputNotes[id]
		if !ok {
			return false
		}
		if (args == nil) != (otherArgs == nil) {
			return false
		}
		if args != nil && *args != *otherArgs {
			return false
		}
	}

	if len(r.expectedOutputNotes) != len(other.expectedOutputNotes) {
		return false
	}
	for id, n := range r.expectedOutputNotes {
		if !n.Equal(other.expectedOutputNotes[id]) {
			return false
		}
	}

	if len(r.expectedFutureNotes) != len(other.expectedFutureNotes) {
		return false
	}
	for id, d := range r.expectedFutureNotes {
		if !d.Equal(other.expectedFutureNotes[id]) {
			return false
		}
	}

	return r.merkleStore.Equal(other.merkleStore)
}
