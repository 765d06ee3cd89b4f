// Package foreign defines the capability protocol through which the Kona
// runtime observes values that originate outside of it.
//
// A foreign value answers a fixed set of capability messages: predicates
// (is it null, a boolean, a number, a string, an exception; does it have
// array elements, buffer elements, members, a meta object; is it a date,
// time, instant, duration, time zone) and the paired accessors that read
// the underlying data. Predicates never fail. Accessors return an error
// for capabilities the value does not hold; an accessor failing after its
// paired predicate reported true is a breach of the protocol contract,
// and consumers are entitled to treat it as such.
//
// Implementations embed Opaque and override the messages they support.
// The subpackages provide production adapters: hostvalue (native Go
// values), protovalue (dynamic protobuf messages), sqlvalue (database
// rows), wirevalue (CBOR snapshots of remote values).
package foreign
