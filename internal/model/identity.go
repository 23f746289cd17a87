package model

// Identity describes the caller on whose behalf an operation runs.  It is
// produced by the JWT middleware for authenticated administrators and is the
// zero value for ordinary guests.  The lifecycle reducer uses it for
// attribution (bookedBy / confirmedBy) and the handlers use Privileged to
// bypass the table unlock policy and the booking deadline.
type Identity struct {
    Privileged  bool
    DisplayName string
}

// Guest is the identity of an unauthenticated caller.
var Guest = Identity{}
