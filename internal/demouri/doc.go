// Package demouri parses and validates the temporary connection address
// issued to a demo Cartridge cluster.
//
// A demo address has the form user:password@host:port. It is split once on
// '@' into credentials and server, and each half is split once on ':'. No
// escaping or percent-decoding is performed.
//
// Malformed addresses are rejected with a typed *Error rather than producing
// partially populated parts:
//
//	u, err := demouri.Decompose("user1:pass1@127.0.0.1:3301")
//	if err != nil {
//	    var uerr *demouri.Error
//	    if errors.As(err, &uerr) && uerr.Kind == demouri.ErrKindMissingAt {
//	        // ...
//	    }
//	}
//
// Components that only need a yes/no answer take a Validator, so callers can
// swap the format check without touching the component.
package demouri
