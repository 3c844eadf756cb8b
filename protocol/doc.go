/*
Package protocol provides structures which represent operations and returns
from the report mapper service.

The Observation structure represents a citizen report, and is the structure
returned from most observation operations. Objects that initiate changes are
suffixed with *Request; POSTing a correctly formatted CreateObservationRequest
to a running instance creates an observation in draft state.

AccessInfo is returned from the access route and summarizes what the caller
is allowed to do with a single observation.
*/
package protocol
