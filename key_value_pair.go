package plantdb

// KeyValuePair is a tuple, used by the index to hand out a record together with the
// name it is displayed and addressed by.
type KeyValuePair[TK any, TV any] struct {
	// Key is the key part in the pair.
	Key TK `json:"key"`
	// Value is the value part in the pair.
	Value TV `json:"plant"`
}

// Entry is the pair produced by traversals and searches: the record's original-case
// common name and the record itself.
type Entry = KeyValuePair[string, *PlantRecord]
