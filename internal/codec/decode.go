package codec

import (
	"encoding/json"
	"fmt"
)

// OrganizerSecret is the shared secret gating the organizer request. It is
// a compile-time constant per the wire contract; main wiring may override it
// for test harnesses via internal/config, but production builds never
// change it.
var OrganizerSecret = "d8578edf8458ce06fbc5bb76a58c5ca4"

// ErrInvalidSecret is returned when organizer.secret does not match
// OrganizerSecret.
type ErrInvalidSecret struct{}

func (ErrInvalidSecret) Error() string { return "codec: invalid organizer secret" }

// Decode reads a single input line and returns its discriminated Request.
// A line is a JSON object with exactly one top-level key naming the
// operation; decode failures (malformed JSON, unknown key, missing/invalid
// field, bad secret) are all reported as a single error; the dispatcher
// never distinguishes them on the wire.
func Decode(line []byte) (Request, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, fmt.Errorf("codec: malformed request line: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("codec: request must have exactly one top-level key, got %d", len(envelope))
	}

	var key string
	var payload json.RawMessage
	for k, v := range envelope {
		key, payload = k, v
	}

	switch key {
	case "open":
		var r OpenRequest
		return decodeInto(&r, payload)
	case "organizer":
		var r OrganizerRequest
		req, err := decodeInto(&r, payload)
		if err != nil {
			return nil, err
		}
		if r.Secret != OrganizerSecret {
			return nil, ErrInvalidSecret{}
		}
		return req, nil
	case "event":
		var r EventRequest
		return decodeInto(&r, payload)
	case "user":
		var r UserRequest
		return decodeInto(&r, payload)
	case "talk":
		var r TalkRequest
		return decodeInto(&r, payload)
	case "register_user_for_event":
		var r RegisterUserForEventRequest
		return decodeInto(&r, payload)
	case "attendance":
		var r AttendanceRequest
		return decodeInto(&r, payload)
	case "evaluation":
		var r EvaluationRequest
		return decodeInto(&r, payload)
	case "reject":
		var r RejectRequest
		return decodeInto(&r, payload)
	case "proposal":
		var r ProposalRequest
		return decodeInto(&r, payload)
	case "friends":
		var r FriendsRequest
		return decodeInto(&r, payload)
	case "user_plan":
		var r UserPlanRequest
		return decodeInto(&r, payload)
	case "day_plan":
		var r DayPlanRequest
		return decodeInto(&r, payload)
	case "best_talks":
		var r BestTalksRequest
		return decodeInto(&r, payload)
	case "most_popular_talks":
		var r MostPopularTalksRequest
		return decodeInto(&r, payload)
	case "attended_talks":
		var r AttendedTalksRequest
		return decodeInto(&r, payload)
	case "abandoned_talks":
		var r AbandonedTalksRequest
		return decodeInto(&r, payload)
	case "recently_added_talks":
		var r RecentlyAddedTalksRequest
		return decodeInto(&r, payload)
	case "rejected_talks":
		var r RejectedTalksRequest
		return decodeInto(&r, payload)
	case "proposals":
		var r ProposalsRequest
		return decodeInto(&r, payload)
	case "friends_talks":
		var r FriendsTalksRequest
		return decodeInto(&r, payload)
	case "friends_events":
		var r FriendsEventsRequest
		return decodeInto(&r, payload)
	case "recommended_talks":
		var r RecommendedTalksRequest
		return decodeInto(&r, payload)
	default:
		return nil, fmt.Errorf("codec: unknown request key %q", key)
	}
}

func decodeInto[T Request](r *T, payload json.RawMessage) (Request, error) {
	if err := json.Unmarshal(payload, r); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return *r, nil
}
